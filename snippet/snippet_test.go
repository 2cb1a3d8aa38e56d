/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snippet_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipfmt/snippet"
)

func TestResolveBody(t *testing.T) {
	assert.Equal(t, "a\nb", snippet.ResolveBody(snippet.List("a", "b")))
	assert.Equal(t, "x", snippet.ResolveBody(snippet.String("x")))
	assert.Equal(t, "", snippet.ResolveBody(snippet.List()))
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		// a comment, as allowed in .code-snippets files
		"Log": {
			"prefix": ["log", "cl"],
			"body": ["console.log($1);", "$0"],
			"description": "Log output",
			"scope": "javascript,typescript",
			"isFileTemplate": false,
		},
		"Const": {
			"prefix": "const",
			"body": "const ${1:name} = $2;"
		}
	}`)

	c, err := snippet.ParseJSON(data)
	require.NoError(t, err)
	require.Equal(t, []string{"Const", "Log"}, c.Names())

	log := c["Log"]
	assert.True(t, log.Prefix.IsList())
	assert.Equal(t, []string{"log", "cl"}, log.Prefix.Values())
	assert.True(t, log.Body.IsList())
	assert.Equal(t, "console.log($1);\n$0", snippet.ResolveBody(log.Body))
	assert.Equal(t, "Log output", log.Description)
	assert.Equal(t, "javascript,typescript", log.Extra["scope"])
	assert.Equal(t, false, log.Extra["isFileTemplate"])

	constant := c["Const"]
	assert.False(t, constant.Body.IsList())
	assert.Equal(t, "const", constant.Prefix.First())
	assert.Empty(t, constant.Extra)
}

func TestParseJSON_InvalidBody(t *testing.T) {
	_, err := snippet.ParseJSON([]byte(`{"x": {"body": 42}}`))
	assert.ErrorContains(t, err, "body")
}

func TestEncodeJSON(t *testing.T) {
	c := snippet.Collection{
		"div": {
			Prefix:      snippet.String("div"),
			Body:        snippet.List("<div>$1</div>", "$0"),
			Description: "A <div> & more",
			Extra:       map[string]any{"scope": "html", "count": json.Number("3")},
		},
	}

	got, err := snippet.EncodeJSON(c)
	require.NoError(t, err)

	want := `{
  "div": {
    "prefix": "div",
    "body": [
      "<div>$1</div>",
      "$0"
    ],
    "description": "A <div> & more",
    "count": 3,
    "scope": "html"
  }
}
`
	assert.Equal(t, want, string(got))
}

func TestJSON_RoundTrip(t *testing.T) {
	data := []byte(`{"a":{"prefix":["x","y"],"body":"$1","description":"d","scope":"go","meta":{"n":1.5}}}`)

	c, err := snippet.ParseJSON(data)
	require.NoError(t, err)

	out, err := snippet.EncodeJSON(c)
	require.NoError(t, err)

	assert.JSONEq(t, string(data), string(out))
}

func TestYAML_RoundTrip(t *testing.T) {
	data := []byte(`log:
  prefix: log
  body:
    - console.log($1);
    - $0
  description: Log output
  scope: javascript
`)

	c, err := snippet.ParseYAML(data)
	require.NoError(t, err)

	log := c["log"]
	assert.Equal(t, "log", log.Prefix.First())
	assert.Equal(t, []string{"console.log($1);", "$0"}, log.Body.Values())
	assert.Equal(t, "javascript", log.Extra["scope"])

	out, err := snippet.EncodeYAML(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "log:\n  prefix: log\n")

	again, err := snippet.ParseYAML(out)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestEmptyDescription_IsKept(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		c, err := snippet.ParseJSON([]byte(`{"a":{"body":"$1","description":""},"b":{"body":"$2"}}`))
		require.NoError(t, err)

		c["a"] = c["a"].WithBody(snippet.String("$0"))
		out, err := snippet.EncodeJSON(c)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":{"body":"$0","description":""},"b":{"body":"$2"}}`, string(out))
	})

	t.Run("yaml", func(t *testing.T) {
		c, err := snippet.ParseYAML([]byte("a:\n  body: $1\n  description: \"\"\nb:\n  body: $2\n"))
		require.NoError(t, err)

		out, err := snippet.EncodeYAML(c)
		require.NoError(t, err)
		assert.Contains(t, string(out), `description: ""`)
		assert.Equal(t, 1, strings.Count(string(out), "description"))
	})
}

func TestParseYAML_NotAMapping(t *testing.T) {
	_, err := snippet.ParseYAML([]byte("log: [1, 2]\n"))
	assert.ErrorContains(t, err, "mapping")
}

func TestWithBody_DoesNotMutate(t *testing.T) {
	original := snippet.Snippet{
		Prefix:      snippet.String("p"),
		Body:        snippet.List("a", "b"),
		Description: "d",
	}

	updated := original.WithBody(snippet.String("c"))

	assert.Equal(t, "c", snippet.ResolveBody(updated.Body))
	assert.Equal(t, "a\nb", snippet.ResolveBody(original.Body))
	assert.Equal(t, original.Prefix, updated.Prefix)
	assert.Equal(t, original.Description, updated.Description)
}

func TestReshape(t *testing.T) {
	tests := []struct {
		name     string
		shape    snippet.Shape
		original snippet.Text
		wantList bool
	}{
		{name: "string", shape: snippet.ShapeString, original: snippet.List("a"), wantList: false},
		{name: "lines", shape: snippet.ShapeLines, original: snippet.String("a"), wantList: true},
		{name: "preserve list", shape: snippet.ShapePreserve, original: snippet.List("a"), wantList: true},
		{name: "preserve string", shape: snippet.ShapePreserve, original: snippet.String("a"), wantList: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet.Reshape("one\ntwo", tt.shape, tt.original)
			assert.Equal(t, tt.wantList, got.IsList())
			assert.Equal(t, "one\ntwo", snippet.ResolveBody(got))
		})
	}
}

func TestParseShape(t *testing.T) {
	shape, err := snippet.ParseShape("")
	require.NoError(t, err)
	assert.Equal(t, snippet.ShapeString, shape)

	shape, err = snippet.ParseShape("preserve")
	require.NoError(t, err)
	assert.Equal(t, snippet.ShapePreserve, shape)

	_, err = snippet.ParseShape("array")
	assert.ErrorContains(t, err, "invalid body shape")
}
