/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package formatter defines the code formatter contract used to lay out
// snippet bodies, and adapts host configuration into formatter options.
package formatter

import (
	"fmt"

	"bennypowers.dev/snipfmt/config"
)

// Formatter formats source text.
// Implementations return a *SyntaxError when text is not valid source.
type Formatter interface {
	Format(text string, opts Options) (string, error)
}

// Func adapts a plain function to the Formatter interface.
type Func func(text string, opts Options) (string, error)

// Format calls f.
func (f Func) Format(text string, opts Options) (string, error) {
	return f(text, opts)
}

// Options is passed through to the formatter untouched.
// The field set follows prettier's options; zero values and nil pointers mean
// "use the formatter's default".
type Options struct {
	PrintWidth         int
	TabWidth           int
	UseTabs            *bool
	Semi               *bool
	SingleQuote        *bool
	TrailingComma      string
	BracketSpacing     *bool
	JSXBracketSameLine *bool
	RangeStart         int
	RangeEnd           int
	Parser             string
	Filepath           string
	RequirePragma      *bool
	InsertPragma       *bool
	ProseWrap          string
}

// FromConfig maps host formatting configuration onto Options, field by field.
func FromConfig(c config.Formatting) Options {
	return Options{
		PrintWidth:         c.PrintWidth,
		TabWidth:           c.TabWidth,
		UseTabs:            c.UseTabs,
		Semi:               c.Semi,
		SingleQuote:        c.SingleQuote,
		TrailingComma:      c.TrailingComma,
		BracketSpacing:     c.BracketSpacing,
		JSXBracketSameLine: c.JSXBracketSameLine,
		RangeStart:         c.RangeStart,
		RangeEnd:           c.RangeEnd,
		Parser:             c.Parser,
		Filepath:           c.Filepath,
		RequirePragma:      c.RequirePragma,
		InsertPragma:       c.InsertPragma,
		ProseWrap:          c.ProseWrap,
	}
}

// Bool returns the value of an optional flag, or def when unset.
func Bool(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// SyntaxError reports text the formatter rejected as invalid source.
// Line and Column are 1-based; zero means unknown.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return "syntax error: " + e.Message
	}
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}
