/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for snipfmt.
package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/snipfmt/cmd/options"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/internal/report"
	"bennypowers.dev/snipfmt/snippet"
)

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report snippet files that are not formatted",
	Long: `Format snippet files in memory and report the snippets that would change.
Exits non-zero when any file is unformatted or a snippet fails to format.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only report problems")
	options.AddFormatting(Cmd.Flags())
	options.AddLoading(Cmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := options.Config(cmd)
	if err != nil {
		return err
	}
	targets, err := options.Targets(cmd, cfg, args)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), options.Color(cmd))
	loadOpts := options.LoadOptions(cmd)
	unformatted := 0
	failed := false

	for _, target := range targets {
		result, err := options.Format(cmd.Context(), cfg, target, loadOpts)
		if result != nil {
			for _, f := range result.Failures {
				printer.Failed(result.File.Path, f.Name, f.Err)
			}
		}
		if err != nil {
			if result == nil {
				logger.Error("%s: %v", target.Spec, err)
			}
			failed = true
			continue
		}
		if len(result.Failures) > 0 {
			failed = true
		}

		if len(result.Changed) > 0 {
			unformatted++
			printer.Unformatted(result.File.Path, result.Changed)
		} else if !quiet {
			printer.Formatted(result.File.Path)
		}

		width := target.Options.Formatting.PrintWidth
		for _, name := range result.Output.Names() {
			body := snippet.ResolveBody(result.Output[name].Body)
			printer.Hints(result.File.Path, name, report.LongLines(body, width), width)
		}
	}

	if unformatted > 0 {
		return fmt.Errorf("%d of %d files are not formatted", unformatted, len(targets))
	}
	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}
