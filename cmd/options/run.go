/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package options

import (
	"context"

	"bennypowers.dev/snipfmt/config"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/internal/service"
	"bennypowers.dev/snipfmt/load"
	"bennypowers.dev/snipfmt/snippet"
	"bennypowers.dev/snipfmt/transform"
)

// Result is the outcome of formatting one snippet file.
type Result struct {
	File *load.File

	// Output is nil when the run failed fast.
	Output snippet.Collection

	// Changed lists the snippets whose body Output changed.
	Changed []string

	// Failures lists the snippets the formatter rejected.
	Failures []*transform.SnippetError
}

// Format loads the target and runs the transformer over it. Snippet failures
// are reported in the Result; the error is set only when the file could not
// be processed at all or the run failed fast.
func Format(ctx context.Context, cfg *config.Config, target Target, opts load.Options) (*Result, error) {
	file, err := load.Load(ctx, target.Spec, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("%s: %d snippets (%s)", file.Path, len(file.Collection), file.Kind)

	t, err := service.NewTransformer(cfg, target.Options)
	if err != nil {
		return nil, err
	}

	out, runErr := t.Run(ctx, file.Collection)
	result := &Result{File: file, Output: out, Failures: service.SnippetErrors(runErr)}
	if out == nil {
		return result, runErr
	}
	result.Changed = service.Changed(file.Collection, out)
	return result, nil
}
