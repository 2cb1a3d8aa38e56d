/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for snipfmt.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"bennypowers.dev/snipfmt/cmd/check"
	"bennypowers.dev/snipfmt/cmd/format"
	"bennypowers.dev/snipfmt/cmd/inspect"
	"bennypowers.dev/snipfmt/cmd/mcp"
	"bennypowers.dev/snipfmt/cmd/serve"
	"bennypowers.dev/snipfmt/cmd/version"
	"bennypowers.dev/snipfmt/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "snipfmt",
	Short: "Format editor snippet templates",
	Long: `snipfmt formats the bodies of editor snippets (VS Code .code-snippets,
JSON or YAML) with a code formatter, without breaking their $1, ${1:default}
and method markers.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringP("root", "C", ".", "Project directory holding .config/snipfmt.* and node_modules")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().String("color", "auto", "Color output (auto, always, never)")

	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(format.Cmd)
	rootCmd.AddCommand(inspect.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
