/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package marker

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	tabstopRe     = regexp.MustCompile(`\$(\d)`)
	placeholderRe = regexp.MustCompile(`\$\{(\d):(\w+)\}`)
	superCallRe   = regexp.MustCompile(`super\(([^()]*)\)`)
	signatureRe   = regexp.MustCompile(`^(\w+)\(([^()]*)\)`)

	multiDigitTabstopRe = regexp.MustCompile(`\$\d{2,}`)
	bracedMarkerRe      = regexp.MustCompile(`\$\{\d+[^}]*\}`)
	whitespaceRe        = regexp.MustCompile(`\s+`)
)

// Inventory lists the markers found in a snippet body.
// Two bodies with equal inventories carry the same tabstops, defaults and
// call arguments, whatever their layout.
type Inventory struct {
	// Tabstops holds the distinct tabstop indices, sorted.
	Tabstops []string

	// Placeholders holds "index:default" pairs, sorted.
	Placeholders []string

	// Calls holds method signatures and super(...) argument lists without
	// whitespace or a trailing comma, sorted.
	Calls []string
}

// Take builds the inventory of text.
func Take(text string) Inventory {
	var inv Inventory

	for _, m := range tabstopRe.FindAllStringSubmatch(text, -1) {
		if !slices.Contains(inv.Tabstops, m[1]) {
			inv.Tabstops = append(inv.Tabstops, m[1])
		}
	}

	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		inv.Placeholders = append(inv.Placeholders, m[1]+":"+m[2])
	}

	if m := signatureRe.FindStringSubmatch(text); m != nil && !statementKeywords[m[1]] {
		inv.Calls = append(inv.Calls, m[1]+"("+args(m[2])+")")
	}
	for _, m := range superCallRe.FindAllStringSubmatch(text, -1) {
		inv.Calls = append(inv.Calls, "super("+args(m[1])+")")
	}

	slices.Sort(inv.Tabstops)
	slices.Sort(inv.Placeholders)
	slices.Sort(inv.Calls)

	return inv
}

// Equal reports whether both inventories hold the same markers.
func (inv Inventory) Equal(other Inventory) bool {
	return slices.Equal(inv.Tabstops, other.Tabstops) &&
		slices.Equal(inv.Placeholders, other.Placeholders) &&
		slices.Equal(inv.Calls, other.Calls)
}

// Diff describes how other differs from inv, or returns "" when they are equal.
func (inv Inventory) Diff(other Inventory) string {
	var parts []string
	if !slices.Equal(inv.Tabstops, other.Tabstops) {
		parts = append(parts, fmt.Sprintf("tabstops %v -> %v", inv.Tabstops, other.Tabstops))
	}
	if !slices.Equal(inv.Placeholders, other.Placeholders) {
		parts = append(parts, fmt.Sprintf("placeholders %v -> %v", inv.Placeholders, other.Placeholders))
	}
	if !slices.Equal(inv.Calls, other.Calls) {
		parts = append(parts, fmt.Sprintf("calls %v -> %v", inv.Calls, other.Calls))
	}
	return strings.Join(parts, "; ")
}

// args normalizes an argument list: whitespace and a trailing comma are
// layout, not markers.
func args(s string) string {
	return strings.TrimSuffix(whitespaceRe.ReplaceAllString(s, ""), ",")
}

// IssueKind classifies a marker the default rules cannot hide.
type IssueKind string

const (
	// IssueMultiDigitTabstop is a tabstop like $10, read as $1 followed by "0".
	IssueMultiDigitTabstop IssueKind = "multi-digit-tabstop"

	// IssueUnsupportedPlaceholder is a braced marker the Placeholder rule
	// does not match, such as ${1:two words}, ${10:x} or ${1|a,b|}.
	IssueUnsupportedPlaceholder IssueKind = "unsupported-placeholder"
)

// Issue is a marker left as literal text by the default rules.
type Issue struct {
	Kind   IssueKind
	Text   string
	Offset int
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %q at offset %d", i.Kind, i.Text, i.Offset)
}

// Unsupported reports markers outside the supported grammar.
// These pass through substitution unchanged and usually make the formatter fail.
func Unsupported(text string) []Issue {
	var issues []Issue

	for _, loc := range multiDigitTabstopRe.FindAllStringIndex(text, -1) {
		issues = append(issues, Issue{Kind: IssueMultiDigitTabstop, Text: text[loc[0]:loc[1]], Offset: loc[0]})
	}

	for _, loc := range bracedMarkerRe.FindAllStringIndex(text, -1) {
		found := text[loc[0]:loc[1]]
		if placeholderRe.FindString(found) == found {
			continue
		}
		issues = append(issues, Issue{Kind: IssueUnsupportedPlaceholder, Text: found, Offset: loc[0]})
	}

	slices.SortFunc(issues, func(a, b Issue) int { return a.Offset - b.Offset })

	return issues
}
