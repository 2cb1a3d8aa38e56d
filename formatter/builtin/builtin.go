/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package builtin is a layout formatter built on tree-sitter grammars.
// It validates syntax and normalizes indentation; it does not rewrap lines.
package builtin

import (
	"fmt"
	"regexp"
	"strings"

	"fortio.org/safecast"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"bennypowers.dev/snipfmt/formatter"
)

// DefaultTabWidth is used when Options.TabWidth is zero.
const DefaultTabWidth = 2

var pragmaRe = regexp.MustCompile(`^\s*(?:/\*\*?[\s\S]*?@(?:format|prettier)\b[\s\S]*?\*/|<!--[\s\S]*?@(?:format|prettier)\b[\s\S]*?-->|//\s*@(?:format|prettier)\b)`)

// Formatter lays out source text using tree-sitter syntax trees.
type Formatter struct{}

// New creates a builtin formatter.
func New() *Formatter {
	return &Formatter{}
}

var _ formatter.Formatter = (*Formatter)(nil)

// Format parses text with the grammar selected by opts and reindents it.
// Text that does not parse cleanly yields a *formatter.SyntaxError.
func (f *Formatter) Format(text string, opts formatter.Options) (string, error) {
	lang, err := languageFor(opts)
	if err != nil {
		return "", err
	}

	hasPragma := pragmaRe.MatchString(text)
	if formatter.Bool(opts.RequirePragma, false) && !hasPragma {
		return text, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang.ts); err != nil {
		return "", fmt.Errorf("loading %s grammar: %w", lang.name, err)
	}

	src := []byte(text)
	tree := parser.Parse(src, nil)
	if tree == nil {
		return "", fmt.Errorf("parsing %s source failed", lang.name)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return "", syntaxError(root, src)
	}

	out := layout(src, root, lang, opts)
	if formatter.Bool(opts.InsertPragma, false) && !hasPragma {
		out = lang.pragma + "\n\n" + out
	}
	return out, nil
}

// syntaxError describes the first ERROR or MISSING node in document order.
func syntaxError(root *tree_sitter.Node, src []byte) error {
	bad := firstBad(root)
	if bad == nil {
		return &formatter.SyntaxError{Message: "invalid source"}
	}

	pos := bad.StartPosition()
	line, _ := safecast.Conv[int](pos.Row)
	col, _ := safecast.Conv[int](pos.Column)

	msg := "unexpected " + quoteExcerpt(bad.Utf8Text(src))
	if bad.IsMissing() {
		msg = "missing " + bad.Kind()
	}
	return &formatter.SyntaxError{Message: msg, Line: line + 1, Column: col + 1}
}

func firstBad(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := firstBad(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func quoteExcerpt(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 20 {
		s = s[:20] + "..."
	}
	return fmt.Sprintf("%q", s)
}

// layout rewrites leading whitespace of every line to match its nesting depth,
// trims trailing whitespace, and collapses runs of blank lines.
func layout(src []byte, root *tree_sitter.Node, lang *language, opts formatter.Options) string {
	unit := strings.Repeat(" ", tabWidth(opts))
	if formatter.Bool(opts.UseTabs, false) {
		unit = "\t"
	}

	lines := strings.Split(string(src), "\n")
	out := make([]string, 0, len(lines))
	offset := 0
	for row, line := range lines {
		start := offset
		offset += len(line) + 1

		if !inRange(start, opts) || inVerbatim(root, lang, start) {
			out = append(out, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}

		first := start + len(line) - len(strings.TrimLeft(line, " \t"))
		out = append(out, strings.Repeat(unit, depth(root, lang, row, first))+trimmed)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

func tabWidth(opts formatter.Options) int {
	if opts.TabWidth > 0 {
		return opts.TabWidth
	}
	return DefaultTabWidth
}

// inRange reports whether a line starting at offset lies in the formatting range.
func inRange(offset int, opts formatter.Options) bool {
	if offset < opts.RangeStart {
		return false
	}
	return opts.RangeEnd <= 0 || offset < opts.RangeEnd
}

// inVerbatim reports whether the line starting at offset start begins inside
// a node whose content must be kept as written.
func inVerbatim(root *tree_sitter.Node, lang *language, start int) bool {
	n := root.DescendantForByteRange(uint(start), uint(start))
	for ; n != nil; n = n.Parent() {
		if lang.verbatim[n.Kind()] && startByte(n) < start {
			return true
		}
	}
	return false
}

// depth counts indenting ancestors of the token at offset that open on earlier
// rows. Ancestors opening on the same row count once, and a row whose nodes
// are closed by the line's first token contributes nothing.
func depth(root *tree_sitter.Node, lang *language, row, offset int) int {
	n := root.DescendantForByteRange(uint(offset), uint(offset))

	type group struct {
		row    int
		closed bool
	}
	var groups []group
	for ; n != nil; n = n.Parent() {
		if !lang.indent[n.Kind()] {
			continue
		}
		r := startRow(n)
		if r >= row {
			continue
		}
		closed := closesAt(n, lang, offset)
		if len(groups) > 0 && groups[len(groups)-1].row == r {
			groups[len(groups)-1].closed = groups[len(groups)-1].closed || closed
			continue
		}
		groups = append(groups, group{row: r, closed: closed})
	}

	d := 0
	for _, g := range groups {
		if !g.closed {
			d++
		}
	}
	return d
}

// closesAt reports whether n's last child is a closing token starting at offset.
func closesAt(n *tree_sitter.Node, lang *language, offset int) bool {
	count := n.ChildCount()
	if count == 0 {
		return false
	}
	last := n.Child(count - 1)
	if last == nil || startByte(last) != offset {
		return false
	}
	switch kind := last.Kind(); kind {
	case "}", "]", ")":
		return true
	default:
		return lang.closers[kind]
	}
}

func startByte(n *tree_sitter.Node) int {
	b, _ := safecast.Conv[int](n.StartByte())
	return b
}

func startRow(n *tree_sitter.Node) int {
	r, _ := safecast.Conv[int](n.StartPosition().Row)
	return r
}
