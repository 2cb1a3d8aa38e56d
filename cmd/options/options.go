/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package options holds the flags and config loading shared by snipfmt commands.
package options

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bennypowers.dev/snipfmt/config"
	"bennypowers.dev/snipfmt/fs"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/internal/report"
	"bennypowers.dev/snipfmt/load"
)

// AddFormatting registers the formatter and formatting flags. Flag names
// match the keys read by config.ApplyOverrides.
func AddFormatting(flags *pflag.FlagSet) {
	flags.String("formatter", "", "Formatter backend (builtin, prettier)")
	flags.String("prettier", "", "Path to the prettier executable")
	flags.String("body", "", "Body shape on output (string, lines, preserve)")
	flags.Int("concurrency", 0, "Snippets formatted in parallel")
	flags.Bool("continue-on-error", false, "Keep failed snippets unchanged instead of aborting")
	flags.Bool("verify", true, "Fail snippets whose markers change during formatting")

	flags.String("parser", "", "Parser (babel, css, scss, less, html, vue, php, ...)")
	flags.String("filepath", "", "Infer the parser from this file name")
	flags.Int("print-width", 0, "Line width the formatter aims for")
	flags.Int("tab-width", 0, "Spaces per indentation level")
	flags.Bool("use-tabs", false, "Indent with tabs")
	flags.Bool("semi", true, "Print semicolons")
	flags.Bool("single-quote", false, "Prefer single quotes")
	flags.String("trailing-comma", "", "Trailing commas (none, es5, all)")
	flags.Bool("bracket-spacing", true, "Print spaces inside object braces")
	flags.Bool("jsx-bracket-same-line", false, "Put > of multi-line JSX elements on the last line")
	flags.Int("range-start", 0, "Format from this byte offset")
	flags.Int("range-end", 0, "Format up to this byte offset")
	flags.Bool("require-pragma", false, "Only format bodies starting with a @format pragma")
	flags.Bool("insert-pragma", false, "Insert a @format pragma into formatted bodies")
	flags.String("prose-wrap", "", "Markdown prose wrapping (always, never, preserve)")
}

// AddLoading registers the flags that control where snippet files come from.
func AddLoading(flags *pflag.FlagSet) {
	flags.Bool("offline", false, "Disable URL specifiers and the CDN fallback")
	flags.Bool("cdn-fallback", false, "Fetch npm: specifiers from unpkg.com when not installed")
}

// Root returns the working directory selected with --root.
func Root(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		return "."
	}
	return root
}

// Config loads the config file and .prettierrc under --root, then applies
// SNIPFMT_* environment variables and changed flags.
func Config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.LoadOrDefault(fs.NewOSFileSystem(), Root(cmd))

	v := config.NewViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}
	config.ApplyOverrides(cfg, v)
	return cfg, nil
}

// Target is one snippet file to process.
type Target struct {
	Spec    string
	Options config.FileOptions
}

// Targets returns the files named on the command line, or those matched by
// the config's files list when there are no arguments.
func Targets(cmd *cobra.Command, cfg *config.Config, args []string) ([]Target, error) {
	if len(args) > 0 {
		targets := make([]Target, 0, len(args))
		for _, arg := range args {
			targets = append(targets, Target{Spec: arg, Options: cfg.OptionsForFile(arg)})
		}
		return targets, nil
	}

	resolved, err := cfg.ResolveFiles(fs.NewOSFileSystem(), Root(cmd))
	if err != nil {
		return nil, fmt.Errorf("error expanding config files: %w", err)
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("no files specified and no files found in config")
	}

	targets := make([]Target, 0, len(resolved))
	for _, file := range resolved {
		targets = append(targets, Target{Spec: file.Path, Options: file.Options})
	}
	return targets, nil
}

// LoadOptions returns the load options selected by --root, --offline and
// --cdn-fallback.
func LoadOptions(cmd *cobra.Command) load.Options {
	offline, _ := cmd.Flags().GetBool("offline")
	cdn, _ := cmd.Flags().GetBool("cdn-fallback")

	opts := load.Options{Root: Root(cmd), CDNFallback: cdn && !offline}
	if !offline {
		opts.Fetcher = load.NewHTTPFetcher(load.DefaultMaxSize)
	}
	logger.Debug("loading snippets from %s (offline=%t, cdn-fallback=%t)", opts.Root, offline, opts.CDNFallback)
	return opts
}

// Color reports whether stdout output should be colored per --color.
func Color(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	return report.ResolveColor(mode, os.Stdout)
}
