/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package format provides the format command for snipfmt.
package format

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/snipfmt/cmd/options"
	"bennypowers.dev/snipfmt/fs"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/internal/report"
	"bennypowers.dev/snipfmt/load"
)

// Cmd is the format cobra command.
var Cmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Format the bodies of snippet files",
	Long: `Format the body of every snippet in the given files, keeping tabstops,
placeholders and method markers intact.

Files may be local paths, npm:package/path specifiers or URLs. With no
arguments the files listed in .config/snipfmt.{yaml,json,toml} are used.
Without --write the first file is printed to stdout.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().BoolP("write", "w", false, "Write formatted files in place")
	options.AddFormatting(Cmd.Flags())
	options.AddLoading(Cmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")

	cfg, err := options.Config(cmd)
	if err != nil {
		return err
	}
	targets, err := options.Targets(cmd, cfg, args)
	if err != nil {
		return err
	}
	if !write && len(targets) > 1 {
		return fmt.Errorf("formatting %d files requires --write", len(targets))
	}

	printer := report.NewPrinter(os.Stderr, options.Color(cmd))
	filesystem := fs.NewOSFileSystem()
	loadOpts := options.LoadOptions(cmd)
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

		if !write {
			data, err := load.Encode(result.File.Format, result.Output)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			continue
		}

		if len(result.Changed) == 0 {
			logger.Debug("%s: unchanged", result.File.Path)
			continue
		}
		if err := load.Write(filesystem, result.File, result.Output); err != nil {
			if errors.Is(err, load.ErrReadOnly) {
				printer.Warn("%s: %v", target.Spec, err)
			} else {
				logger.Error("%s: %v", target.Spec, err)
			}
			failed = true
			continue
		}
		printer.Written(result.File.Path)
	}

	if failed {
		return fmt.Errorf("formatting failed")
	}
	return nil
}
