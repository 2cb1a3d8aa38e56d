/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package inspect provides the inspect command for snipfmt.
package inspect

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/snipfmt/cmd/options"
	"bennypowers.dev/snipfmt/internal/report"
	"bennypowers.dev/snipfmt/internal/service"
	"bennypowers.dev/snipfmt/load"
)

// Cmd is the inspect cobra command.
var Cmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "List the markers of every snippet",
	Long: `List the tabstops, placeholders and method calls of every snippet, and
report markers the formatter cannot protect, such as multi-digit tabstops or
placeholders with non-word defaults.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	options.AddLoading(Cmd.Flags())
}

type fileReport struct {
	File     string           `json:"file"`
	Snippets []service.Report `json:"snippets"`
}

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}

	cfg, err := options.Config(cmd)
	if err != nil {
		return err
	}
	targets, err := options.Targets(cmd, cfg, args)
	if err != nil {
		return err
	}

	loadOpts := options.LoadOptions(cmd)
	reports := make([]fileReport, 0, len(targets))
	for _, target := range targets {
		file, err := load.Load(cmd.Context(), target.Spec, loadOpts)
		if err != nil {
			return err
		}
		reports = append(reports, fileReport{File: file.Path, Snippets: service.Inspect(file.Collection)})
	}

	switch format {
	case "json":
		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling reports: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		printer := report.NewPrinter(cmd.OutOrStdout(), options.Color(cmd))
		for _, r := range reports {
			printer.Markers(r.File, r.Snippets)
		}
	}
	return nil
}
