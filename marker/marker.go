/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package marker rewrites snippet markers into formatter-safe identifiers and back.
//
// A snippet body such as
//
//	const x = ${1:value};
//
// is not valid source for any code formatter. Substitute with FromSnippet turns
// every marker into a plain identifier, the formatter runs, and Substitute with
// FromVariable restores the original markers.
package marker

import (
	"errors"
	"regexp"
	"strings"
)

// Direction selects which side of a Rule is applied.
type Direction string

const (
	// FromSnippet rewrites snippet markers into formatter-safe text.
	FromSnippet Direction = "snippet"

	// FromVariable rewrites formatter-safe text back into snippet markers.
	FromVariable Direction = "variable"
)

// ReservedPrefix starts every intermediate token produced by the default rules.
// Snippet bodies must not contain identifiers or comments with this prefix.
const ReservedPrefix = "__snip_"

// ErrEmptySyntax is returned by NewSyntax when no rules are given.
var ErrEmptySyntax = errors.New("syntax must contain at least one rule")

// Pattern is one half of a Rule: a regular expression and its replacement.
type Pattern struct {
	// Re selects the text to replace.
	Re *regexp.Regexp

	// Template is expanded with regexp.Expand syntax (${1}, $$).
	// Ignored when Func is set.
	Template string

	// Func computes the replacement from the capture groups.
	// groups[0] is the whole match; unmatched groups are empty.
	Func func(groups []string) string

	// Global replaces every match. Otherwise only the first match is replaced.
	Global bool
}

// Replace applies the pattern to text.
func (p Pattern) Replace(text string) string {
	if p.Re == nil {
		return text
	}

	limit := 1
	if p.Global {
		limit = -1
	}

	matches := p.Re.FindAllStringSubmatchIndex(text, limit)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m[0]])
		sb.WriteString(p.expand(text, m))
		last = m[1]
	}
	sb.WriteString(text[last:])

	return sb.String()
}

func (p Pattern) expand(text string, m []int) string {
	if p.Func == nil {
		return string(p.Re.ExpandString(nil, p.Template, text, m))
	}

	groups := make([]string, len(m)/2)
	for i := range groups {
		if m[2*i] >= 0 {
			groups[i] = text[m[2*i]:m[2*i+1]]
		}
	}
	return p.Func(groups)
}

// Rule is a reversible marker definition.
// Variable must undo Snippet on any text matched by Snippet.Re.
type Rule struct {
	// Name identifies the rule in errors and diagnostics.
	Name string

	// Snippet is applied in the FromSnippet direction.
	Snippet Pattern

	// Variable is applied in the FromVariable direction.
	Variable Pattern
}

// Pattern returns the half of the rule used for the given direction.
func (r Rule) Pattern(dir Direction) Pattern {
	if dir == FromVariable {
		return r.Variable
	}
	return r.Snippet
}

// Syntax is an ordered list of rules applied in sequence.
// Later rules must not match text produced by earlier rules.
type Syntax struct {
	Rules []Rule
}

// NewSyntax builds a Syntax from rules, in order.
func NewSyntax(rules ...Rule) (Syntax, error) {
	if len(rules) == 0 {
		return Syntax{}, ErrEmptySyntax
	}
	return Syntax{Rules: append([]Rule(nil), rules...)}, nil
}

// DefaultSyntax returns the tabstop, placeholder and method rules.
func DefaultSyntax() Syntax {
	return Syntax{Rules: []Rule{Tabstop, Placeholder, Method}}
}

// Substitute rewrites text by applying every rule of syntax for dir, in order.
// A rule that does not match is a no-op.
func Substitute(text string, dir Direction, syntax Syntax) string {
	for _, rule := range syntax.Rules {
		text = rule.Pattern(dir).Replace(text)
	}
	return text
}
