/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package transform runs every snippet of a collection through a formatter,
// hiding snippet markers from the formatter and restoring them afterwards.
package transform

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/snipfmt/formatter"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/marker"
	"bennypowers.dev/snipfmt/snippet"
)

// FormatAll formats every snippet body in snippets and returns a new
// collection. The input is not modified. The first formatter failure, or the
// first body whose markers do not survive formatting, fails the whole batch.
func FormatAll(snippets snippet.Collection, syntax marker.Syntax, opts formatter.Options, f formatter.Formatter) (snippet.Collection, error) {
	t := &Transformer{Syntax: syntax, Formatter: f, Options: opts, Verify: true}
	return t.Run(context.Background(), snippets)
}

// FormatBody formats a single body text: substitute markers away, format,
// restore markers, trim.
func FormatBody(body string, syntax marker.Syntax, opts formatter.Options, f formatter.Formatter) (string, error) {
	formatted, err := f.Format(marker.Substitute(body, marker.FromSnippet, syntax), opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(marker.Substitute(formatted, marker.FromVariable, syntax)), nil
}

// Transformer formats snippet collections.
type Transformer struct {
	// Syntax defaults to marker.DefaultSyntax when it has no rules.
	Syntax    marker.Syntax
	Formatter formatter.Formatter
	Options   formatter.Options

	// Shape selects how bodies are written; the zero value writes strings.
	Shape snippet.Shape

	// Concurrency is the number of snippets formatted at once.
	// Values below 2 format sequentially in name order.
	Concurrency int

	// ContinueOnError formats every snippet, copies failed ones through
	// unchanged and joins all failures into the returned error.
	ContinueOnError bool

	// Verify compares the markers of every body before and after formatting.
	Verify bool
}

// Run formats every snippet. Without ContinueOnError the first failure
// cancels the batch and Run returns a nil collection.
func (t *Transformer) Run(ctx context.Context, snippets snippet.Collection) (snippet.Collection, error) {
	names := snippets.Names()
	results := make([]snippet.Snippet, len(names))
	errs := make([]error, len(names))

	process := func(i int) error {
		name := names[i]
		out, err := t.one(name, snippets[name])
		if err != nil {
			if !t.ContinueOnError {
				return err
			}
			logger.Error("%v", err)
			out = snippets[name]
			errs[i] = err
		}
		results[i] = out
		return nil
	}

	if t.Concurrency > 1 && len(names) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(t.Concurrency, len(names)))
		for i := range names {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return process(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := process(i); err != nil {
				return nil, err
			}
		}
	}

	out := make(snippet.Collection, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, errors.Join(errs...)
}

func (t *Transformer) syntax() marker.Syntax {
	if len(t.Syntax.Rules) == 0 {
		return marker.DefaultSyntax()
	}
	return t.Syntax
}

func (t *Transformer) one(name string, s snippet.Snippet) (snippet.Snippet, error) {
	body := snippet.ResolveBody(s.Body)

	for _, issue := range marker.Unsupported(body) {
		logger.Warn("snippet %q: %s is left as literal text", name, issue)
	}

	formatted, err := FormatBody(body, t.syntax(), t.Options, t.Formatter)
	if err != nil {
		return snippet.Snippet{}, &SnippetError{Name: name, Err: err}
	}

	if t.Verify {
		before, after := marker.Take(body), marker.Take(formatted)
		if !before.Equal(after) {
			return snippet.Snippet{}, &SnippetError{
				Name: name,
				Err:  &MarkerMismatchError{Before: before, After: after},
			}
		}
	}

	logger.Debug("formatted snippet %q", name)
	return s.WithBody(snippet.Reshape(formatted, t.Shape, s.Body)), nil
}
