/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package service wires configuration, formatter backends and the snippet
// transformer together for the CLI, MCP and HTTP front ends.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/snipfmt/config"
	"bennypowers.dev/snipfmt/formatter"
	"bennypowers.dev/snipfmt/formatter/builtin"
	"bennypowers.dev/snipfmt/formatter/prettier"
	"bennypowers.dev/snipfmt/load"
	"bennypowers.dev/snipfmt/marker"
	"bennypowers.dev/snipfmt/snippet"
	"bennypowers.dev/snipfmt/transform"
)

// ErrUnknownFormatter is returned for a formatter name other than builtin or prettier.
var ErrUnknownFormatter = errors.New("unknown formatter")

// NewFormatter returns the backend named by cfg.Formatter.
func NewFormatter(cfg *config.Config) (formatter.Formatter, error) {
	switch strings.ToLower(cfg.Formatter) {
	case "", config.FormatterBuiltin:
		return builtin.New(), nil
	case config.FormatterPrettier:
		return prettier.New(cfg.Prettier), nil
	default:
		return nil, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownFormatter, cfg.Formatter, config.FormatterBuiltin, config.FormatterPrettier)
	}
}

// NewTransformer builds a transformer for one file's effective options.
func NewTransformer(cfg *config.Config, opts config.FileOptions) (*transform.Transformer, error) {
	f, err := NewFormatter(cfg)
	if err != nil {
		return nil, err
	}

	shape, err := snippet.ParseShape(opts.Body)
	if err != nil {
		return nil, err
	}

	return &transform.Transformer{
		Syntax:          marker.DefaultSyntax(),
		Formatter:       f,
		Options:         formatter.FromConfig(opts.Formatting),
		Shape:           shape,
		Concurrency:     cfg.Concurrency,
		ContinueOnError: cfg.ContinueOnError,
		Verify:          cfg.Verify,
	}, nil
}

// FormatDocument decodes a serialized collection, formats it and encodes it
// again in the same format. With ContinueOnError the re-encoded document is
// returned together with the joined snippet errors.
func FormatDocument(ctx context.Context, cfg *config.Config, opts config.FileOptions, format load.Format, content []byte) ([]byte, error) {
	c, err := load.Decode(format, content)
	if err != nil {
		return nil, err
	}

	t, err := NewTransformer(cfg, opts)
	if err != nil {
		return nil, err
	}

	out, runErr := t.Run(ctx, c)
	if out == nil {
		return nil, runErr
	}

	data, err := load.Encode(format, out)
	if err != nil {
		return nil, err
	}
	return data, runErr
}

// Changed returns, in name order, the snippets whose body differs between
// before and after. A body that only switched between string and list form
// counts as changed.
func Changed(before, after snippet.Collection) []string {
	var names []string
	for _, name := range before.Names() {
		a, b := before[name].Body, after[name].Body
		if a.IsList() != b.IsList() || !slices.Equal(a.Values(), b.Values()) {
			names = append(names, name)
		}
	}
	return names
}

// Report describes the markers of one snippet.
type Report struct {
	Name         string   `json:"name"`
	Tabstops     []string `json:"tabstops,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
	Calls        []string `json:"calls,omitempty"`
	Issues       []string `json:"issues,omitempty"`
}

// Inspect reports the markers of every snippet, in name order.
func Inspect(c snippet.Collection) []Report {
	reports := make([]Report, 0, len(c))
	for _, name := range c.Names() {
		body := snippet.ResolveBody(c[name].Body)
		inv := marker.Take(body)

		r := Report{
			Name:         name,
			Tabstops:     inv.Tabstops,
			Placeholders: inv.Placeholders,
			Calls:        inv.Calls,
		}
		for _, issue := range marker.Unsupported(body) {
			r.Issues = append(r.Issues, issue.String())
		}
		reports = append(reports, r)
	}
	return reports
}

// SnippetErrors flattens a Run error into one SnippetError per failed snippet.
func SnippetErrors(err error) []*transform.SnippetError {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var result []*transform.SnippetError
		for _, e := range joined.Unwrap() {
			result = append(result, SnippetErrors(e)...)
		}
		return result
	}

	var snippetErr *transform.SnippetError
	if errors.As(err, &snippetErr) {
		return []*transform.SnippetError{snippetErr}
	}
	return nil
}
