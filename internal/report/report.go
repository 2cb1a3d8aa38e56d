/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package report renders CLI results for humans, with optional color.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bennypowers.dev/snipfmt/internal/service"
)

// Printer writes styled results to a writer.
type Printer struct {
	w      io.Writer
	styles styles
}

type styles struct {
	ok    lipgloss.Style
	bad   lipgloss.Style
	warn  lipgloss.Style
	bold  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a Printer. Styles are empty unless color is true.
func NewPrinter(w io.Writer, color bool) *Printer {
	s := styles{
		ok:    lipgloss.NewStyle(),
		bad:   lipgloss.NewStyle(),
		warn:  lipgloss.NewStyle(),
		bold:  lipgloss.NewStyle(),
		muted: lipgloss.NewStyle(),
	}
	if color {
		s.ok = s.ok.Foreground(lipgloss.Color("10"))
		s.bad = s.bad.Foreground(lipgloss.Color("9")).Bold(true)
		s.warn = s.warn.Foreground(lipgloss.Color("11"))
		s.bold = s.bold.Bold(true)
		s.muted = s.muted.Faint(true)
	}
	return &Printer{w: w, styles: s}
}

// ResolveColor decides whether to color output for a --color value of
// never, always or auto.
func ResolveColor(mode string, w io.Writer) bool {
	switch mode {
	case "never":
		return false
	case "always":
		return true
	default:
		return IsTTY(w)
	}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// Formatted reports a file that needs no changes.
func (p *Printer) Formatted(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.ok.Render("ok"), path)
}

// Unformatted reports a file whose listed snippets would change.
func (p *Printer) Unformatted(path string, names []string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.bad.Render("unformatted"), path)
	for _, name := range names {
		fmt.Fprintf(p.w, "  %s\n", name)
	}
}

// Written reports a file rewritten in place.
func (p *Printer) Written(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.ok.Render("formatted"), path)
}

// Failed reports a snippet the formatter rejected.
func (p *Printer) Failed(path, name string, err error) {
	fmt.Fprintf(p.w, "%s %s: %s: %v\n", p.styles.bad.Render("failed"), path, name, err)
}

// Warn reports a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.warn.Render("warning"), fmt.Sprintf(format, args...))
}

// LongLine is a body line wider than the print width.
type LongLine struct {
	Line  int
	Width int
}

// LongLines returns the 1-based lines of body whose display width exceeds
// limit. Tabs count as four columns. A limit of zero or less disables the check.
func LongLines(body string, limit int) []LongLine {
	if limit <= 0 {
		return nil
	}
	var result []LongLine
	for i, line := range strings.Split(body, "\n") {
		if w := runewidth.StringWidth(strings.ReplaceAll(line, "\t", "    ")); w > limit {
			result = append(result, LongLine{Line: i + 1, Width: w})
		}
	}
	return result
}

// Hints prints long-line hints for one snippet.
func (p *Printer) Hints(path, name string, lines []LongLine, limit int) {
	for _, l := range lines {
		p.Warn("%s: %s line %d is %d columns wide (print width %d)", path, name, l.Line, l.Width, limit)
	}
}

const maxCell = 48

// Markers prints one row per snippet report.
func (p *Printer) Markers(path string, reports []service.Report) {
	if path != "" {
		fmt.Fprintln(p.w, p.styles.bold.Render(path))
	}

	width := 0
	for _, r := range reports {
		width = max(width, runewidth.StringWidth(cell(r.Name)))
	}

	for _, r := range reports {
		parts := make([]string, 0, 3)
		if len(r.Tabstops) > 0 {
			parts = append(parts, "tabstops "+strings.Join(r.Tabstops, ","))
		}
		if len(r.Placeholders) > 0 {
			parts = append(parts, "placeholders "+strings.Join(r.Placeholders, ","))
		}
		if len(r.Calls) > 0 {
			parts = append(parts, "calls "+strings.Join(r.Calls, ","))
		}
		summary := strings.Join(parts, "; ")
		if summary == "" {
			summary = p.styles.muted.Render("no markers")
		}

		fmt.Fprintf(p.w, "  %s  %s\n", runewidth.FillRight(cell(r.Name), width), summary)
		for _, issue := range r.Issues {
			fmt.Fprintf(p.w, "  %s  %s\n", strings.Repeat(" ", width), p.styles.warn.Render(issue))
		}
	}
}

func cell(s string) string {
	if runewidth.StringWidth(s) <= maxCell {
		return s
	}
	return runewidth.Truncate(s, maxCell, "...")
}
