/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package prettier formats text by running an external prettier binary.
package prettier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bennypowers.dev/snipfmt/formatter"
)

// DefaultTimeout bounds a single prettier invocation.
const DefaultTimeout = 30 * time.Second

// ErrNotFound is returned when the prettier binary cannot be executed.
var ErrNotFound = errors.New("prettier not found: install it or set --prettier")

// Runner executes a command with stdin and returns its stdout and stderr.
type Runner func(ctx context.Context, name string, args []string, stdin string) (stdout, stderr string, err error)

// Formatter shells out to prettier over stdin/stdout.
type Formatter struct {
	// Bin is the prettier executable, "prettier" when empty.
	Bin     string
	Timeout time.Duration
	Run     Runner
}

var _ formatter.Formatter = (*Formatter)(nil)

// New creates a prettier formatter using bin.
func New(bin string) *Formatter {
	return &Formatter{Bin: bin, Timeout: DefaultTimeout, Run: execRunner}
}

func execRunner(ctx context.Context, name string, args []string, stdin string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Format pipes text through prettier with opts as CLI flags.
func (f *Formatter) Format(text string, opts formatter.Options) (string, error) {
	bin := f.Bin
	if bin == "" {
		bin = "prettier"
	}
	run := f.Run
	if run == nil {
		run = execRunner
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, err := run(ctx, bin, Args(opts), text)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, bin)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("prettier timed out after %s", timeout)
		}
		if syntaxErr := parseSyntaxError(stderr); syntaxErr != nil {
			return "", syntaxErr
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("prettier failed: %s", msg)
	}
	return stdout, nil
}

// Args converts options into prettier CLI flags. Unset options are omitted.
func Args(opts formatter.Options) []string {
	var args []string
	addInt := func(flag string, v int) {
		if v > 0 {
			args = append(args, flag, strconv.Itoa(v))
		}
	}
	addString := func(flag, v string) {
		if v != "" {
			args = append(args, flag, v)
		}
	}
	addBool := func(flag string, v *bool) {
		if v != nil {
			args = append(args, flag+"="+strconv.FormatBool(*v))
		}
	}

	addInt("--print-width", opts.PrintWidth)
	addInt("--tab-width", opts.TabWidth)
	addBool("--use-tabs", opts.UseTabs)
	if opts.Semi != nil && !*opts.Semi {
		args = append(args, "--no-semi")
	}
	addBool("--single-quote", opts.SingleQuote)
	addString("--trailing-comma", opts.TrailingComma)
	if opts.BracketSpacing != nil && !*opts.BracketSpacing {
		args = append(args, "--no-bracket-spacing")
	}
	addBool("--jsx-bracket-same-line", opts.JSXBracketSameLine)
	if opts.RangeStart > 0 {
		args = append(args, "--range-start", strconv.Itoa(opts.RangeStart))
	}
	addInt("--range-end", opts.RangeEnd)
	addString("--parser", opts.Parser)
	addString("--stdin-filepath", opts.Filepath)
	addBool("--require-pragma", opts.RequirePragma)
	addBool("--insert-pragma", opts.InsertPragma)
	addString("--prose-wrap", opts.ProseWrap)
	return args
}

var syntaxErrorRe = regexp.MustCompile(`SyntaxError: (.*?) \((\d+):(\d+)\)`)

// parseSyntaxError extracts "SyntaxError: message (line:col)" from stderr.
func parseSyntaxError(stderr string) *formatter.SyntaxError {
	m := syntaxErrorRe.FindStringSubmatch(stderr)
	if m == nil {
		return nil
	}
	line, _ := strconv.Atoi(m[2])
	col, _ := strconv.Atoi(m[3])
	return &formatter.SyntaxError{Message: m[1], Line: line, Column: col}
}
