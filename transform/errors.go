/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"fmt"

	"bennypowers.dev/snipfmt/marker"
)

// SnippetError attaches the snippet name to a failure.
type SnippetError struct {
	Name string
	Err  error
}

func (e *SnippetError) Error() string {
	return fmt.Sprintf("snippet %q: %v", e.Name, e.Err)
}

func (e *SnippetError) Unwrap() error {
	return e.Err
}

// MarkerMismatchError reports a body whose markers changed during formatting.
type MarkerMismatchError struct {
	Before marker.Inventory
	After  marker.Inventory
}

func (e *MarkerMismatchError) Error() string {
	return "markers changed during formatting: " + e.Before.Diff(e.After)
}
