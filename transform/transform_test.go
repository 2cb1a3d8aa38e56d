/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipfmt/formatter"
	"bennypowers.dev/snipfmt/formatter/builtin"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/marker"
	"bennypowers.dev/snipfmt/snippet"
	"bennypowers.dev/snipfmt/transform"
)

func boolPtr(b bool) *bool { return &b }

var identity = formatter.Func(func(text string, _ formatter.Options) (string, error) {
	return text, nil
})

// failOn rejects any text containing needle.
func failOn(needle string) formatter.Formatter {
	return formatter.Func(func(text string, _ formatter.Options) (string, error) {
		if strings.Contains(text, needle) {
			return "", &formatter.SyntaxError{Message: "unexpected token", Line: 1, Column: 1}
		}
		return text, nil
	})
}

func TestFormatAll_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		body  snippet.Text
		check func(t *testing.T, got string)
	}{
		{
			name: "tabstop survives",
			body: snippet.String("const x = $1;"),
			check: func(t *testing.T, got string) {
				assert.Equal(t, 1, strings.Count(got, "$1"))
				assert.NotContains(t, got, marker.ReservedPrefix)
			},
		},
		{
			name: "placeholder survives",
			body: snippet.String("foo(${1:bar})"),
			check: func(t *testing.T, got string) {
				assert.Contains(t, got, "${1:bar}")
			},
		},
		{
			name: "real function keeps super call",
			body: snippet.List("function test(a, b) {", "  super(a, b);", "}"),
			check: func(t *testing.T, got string) {
				assert.Contains(t, got, "  super(a, b);")
				assert.NotContains(t, got, "/*")
				assert.NotContains(t, got, "*/")
				assert.Equal(t, 1, strings.Count(got, "function"))
			},
		},
		{
			name: "class method",
			body: snippet.List("constructor(a, b) {", "super(a, b);", "$1", "}"),
			check: func(t *testing.T, got string) {
				assert.Equal(t, "constructor(a, b) {\n  super(a, b);\n  $1\n}", got)
			},
		},
		{
			name: "lifecycle method with placeholder parameters",
			body: snippet.List("componentDidUpdate(${1:prevProps}, ${2:prevState}) {", "$0", "}"),
			check: func(t *testing.T, got string) {
				assert.Equal(t, "componentDidUpdate(${1:prevProps}, ${2:prevState}) {\n  $0\n}", got)
			},
		},
		{
			name: "constructor with placeholder super argument",
			body: snippet.List("constructor(props) {", "super(${1:props});", "}"),
			check: func(t *testing.T, got string) {
				assert.Equal(t, "constructor(props) {\n  super(${1:props});\n}", got)
			},
		},
		{
			name: "placeholder followed by word characters",
			body: snippet.String("const ${1:name}Ref = ${2:first}${3:second};"),
			check: func(t *testing.T, got string) {
				assert.Equal(t, "const ${1:name}Ref = ${2:first}${3:second};", got)
			},
		},
	}

	opts := formatter.Options{Semi: boolPtr(true)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := snippet.Collection{"s": {Prefix: snippet.String("s"), Body: tt.body}}
			out, err := transform.FormatAll(in, marker.DefaultSyntax(), opts, builtin.New())
			require.NoError(t, err)
			tt.check(t, out["s"].Body.First())
		})
	}
}

func TestFormatAll_PreservesShape(t *testing.T) {
	in := snippet.Collection{
		"log": {
			Prefix:      snippet.List("log", "cl"),
			Body:        snippet.List("console.log($1);", ""),
			Description: "Log output",
			Extra:       map[string]any{"scope": "javascript"},
		},
		"for": {
			Prefix: snippet.String("for"),
			Body:   snippet.String("  for (const ${1:item} of ${2:items}) {}  "),
		},
	}

	out, err := transform.FormatAll(in, marker.DefaultSyntax(), formatter.Options{}, identity)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, in["log"].Prefix, out["log"].Prefix)
	assert.Equal(t, "Log output", out["log"].Description)
	assert.Equal(t, map[string]any{"scope": "javascript"}, out["log"].Extra)
	assert.Equal(t, snippet.String("console.log($1);"), out["log"].Body)
	assert.Equal(t, snippet.String("for (const ${1:item} of ${2:items}) {}"), out["for"].Body)

	// input untouched
	assert.Equal(t, snippet.List("console.log($1);", ""), in["log"].Body)
}

func TestFormatAll_HidesMarkersFromFormatter(t *testing.T) {
	var seen string
	spy := formatter.Func(func(text string, _ formatter.Options) (string, error) {
		seen = text
		return text, nil
	})

	_, err := transform.FormatAll(
		snippet.Collection{"a": {Body: snippet.String("x($1, ${2:y})")}},
		marker.DefaultSyntax(), formatter.Options{}, spy,
	)
	require.NoError(t, err)
	assert.Equal(t, "x(__snip_tabstop_1, __snip_placeholder_2_1_y)", seen)
}

func TestFormatAll_PassesOptions(t *testing.T) {
	var got formatter.Options
	spy := formatter.Func(func(text string, opts formatter.Options) (string, error) {
		got = opts
		return text, nil
	})
	opts := formatter.Options{PrintWidth: 100, Parser: "babel"}

	_, err := transform.FormatAll(snippet.Collection{"a": {Body: snippet.String("a")}}, marker.DefaultSyntax(), opts, spy)
	require.NoError(t, err)
	assert.Equal(t, opts, got)
}

func TestFormatAll_FailureFailsBatch(t *testing.T) {
	in := snippet.Collection{
		"good": {Body: snippet.String("ok()")},
		"bad":  {Body: snippet.String("bad(")},
	}

	out, err := transform.FormatAll(in, marker.DefaultSyntax(), formatter.Options{}, failOn("bad"))
	require.Error(t, err)
	assert.Nil(t, out)

	var snippetErr *transform.SnippetError
	require.ErrorAs(t, err, &snippetErr)
	assert.Equal(t, "bad", snippetErr.Name)

	var syntaxErr *formatter.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, err.Error(), `snippet "bad"`)
}

func TestFormatAll_VerifiesMarkers(t *testing.T) {
	dropSecond := formatter.Func(func(text string, _ formatter.Options) (string, error) {
		return strings.ReplaceAll(text, "__snip_tabstop_2", "x"), nil
	})

	out, err := transform.FormatAll(
		snippet.Collection{"a": {Body: snippet.String("f($1, $2)")}},
		marker.DefaultSyntax(), formatter.Options{}, dropSecond,
	)
	assert.Nil(t, out)
	var mismatch *transform.MarkerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"1"}, mismatch.After.Tabstops)
}

func TestFormatAll_EmptyCollection(t *testing.T) {
	out, err := transform.FormatAll(snippet.Collection{}, marker.DefaultSyntax(), formatter.Options{}, identity)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFormatBody(t *testing.T) {
	got, err := transform.FormatBody("\n  a($1)\n", marker.DefaultSyntax(), formatter.Options{}, identity)
	require.NoError(t, err)
	assert.Equal(t, "a($1)", got)
}

func TestTransformer_Sequential(t *testing.T) {
	var order []string
	record := formatter.Func(func(text string, _ formatter.Options) (string, error) {
		order = append(order, text)
		if text == "c" {
			return "", errors.New("boom")
		}
		return text, nil
	})

	in := snippet.Collection{
		"3": {Body: snippet.String("c")},
		"1": {Body: snippet.String("a")},
		"2": {Body: snippet.String("b")},
		"4": {Body: snippet.String("d")},
	}
	tr := &transform.Transformer{Formatter: record}
	_, err := tr.Run(context.Background(), in)
	require.Error(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, order, "stops at first failure in name order")
}

func TestTransformer_Concurrent(t *testing.T) {
	var calls atomic.Int32
	counting := formatter.Func(func(text string, _ formatter.Options) (string, error) {
		calls.Add(1)
		return strings.ToUpper(text), nil
	})

	in := snippet.Collection{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		in[name] = snippet.Snippet{Body: snippet.String(name)}
	}

	tr := &transform.Transformer{Formatter: counting, Concurrency: 3}
	out, err := tr.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int32(6), calls.Load())
	for name, s := range out {
		assert.Equal(t, strings.ToUpper(name), s.Body.First())
	}
}

func TestTransformer_ConcurrentFailure(t *testing.T) {
	in := snippet.Collection{
		"a":   {Body: snippet.String("a")},
		"bad": {Body: snippet.String("bad")},
		"c":   {Body: snippet.String("c")},
	}

	tr := &transform.Transformer{Formatter: failOn("bad"), Concurrency: 4}
	out, err := tr.Run(context.Background(), in)
	assert.Nil(t, out)

	var snippetErr *transform.SnippetError
	require.ErrorAs(t, err, &snippetErr)
	assert.Equal(t, "bad", snippetErr.Name)
}

func TestTransformer_ContinueOnError(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	in := snippet.Collection{
		"bad1": {Body: snippet.List("bad", "one")},
		"good": {Body: snippet.String("  fine  ")},
		"bad2": {Body: snippet.String("bad two")},
	}

	for _, concurrency := range []int{1, 4} {
		tr := &transform.Transformer{Formatter: failOn("bad"), ContinueOnError: true, Concurrency: concurrency}
		out, err := tr.Run(context.Background(), in)
		require.Error(t, err)

		assert.Equal(t, in["bad1"], out["bad1"], "failed snippets copied unchanged")
		assert.Equal(t, in["bad2"], out["bad2"])
		assert.Equal(t, snippet.String("fine"), out["good"].Body)
		assert.Contains(t, err.Error(), `snippet "bad1"`)
		assert.Contains(t, err.Error(), `snippet "bad2"`)
	}
	assert.Contains(t, buf.String(), "error: ")
}

func TestTransformer_Verify(t *testing.T) {
	dropSecond := formatter.Func(func(text string, _ formatter.Options) (string, error) {
		return strings.ReplaceAll(text, "__snip_tabstop_2", "x"), nil
	})

	in := snippet.Collection{"a": {Body: snippet.String("f($1, $2)")}}

	tr := &transform.Transformer{Formatter: dropSecond}
	out, err := tr.Run(context.Background(), in)
	require.NoError(t, err, "without Verify the loss goes unnoticed")
	assert.Equal(t, "f($1, x)", out["a"].Body.First())

	tr.Verify = true
	_, err = tr.Run(context.Background(), in)
	var mismatch *transform.MarkerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"1", "2"}, mismatch.Before.Tabstops)
	assert.Equal(t, []string{"1"}, mismatch.After.Tabstops)
	assert.Contains(t, err.Error(), "tabstops [1 2] -> [1]")
}

func TestTransformer_VerifyPassesOnLayoutChange(t *testing.T) {
	tr := &transform.Transformer{Formatter: builtin.New(), Verify: true}
	out, err := tr.Run(context.Background(), snippet.Collection{
		"m": {Body: snippet.List("constructor(a, b) {", "super(a, b);", "this.x = ${1:x};", "}")},
	})
	require.NoError(t, err)
	assert.Equal(t, "constructor(a, b) {\n  super(a, b);\n  this.x = ${1:x};\n}", out["m"].Body.First())
}

func TestTransformer_Shape(t *testing.T) {
	in := snippet.Collection{
		"lines":  {Body: snippet.List("a", "b")},
		"string": {Body: snippet.String("c\nd")},
	}

	tr := &transform.Transformer{Formatter: identity, Shape: snippet.ShapePreserve}
	out, err := tr.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, snippet.List("a", "b"), out["lines"].Body)
	assert.Equal(t, snippet.String("c\nd"), out["string"].Body)

	tr.Shape = snippet.ShapeLines
	out, err = tr.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, snippet.List("c", "d"), out["string"].Body)
}

func TestTransformer_WarnsOnUnsupportedMarkers(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	tr := &transform.Transformer{Formatter: identity}
	_, err := tr.Run(context.Background(), snippet.Collection{"a": {Body: snippet.String("x($10)")}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `warning: snippet "a": multi-digit-tabstop "$10"`)
}

func TestTransformer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := &transform.Transformer{Formatter: identity}
	_, err := tr.Run(ctx, snippet.Collection{"a": {Body: snippet.String("a")}})
	assert.ErrorIs(t, err, context.Canceled)
}
