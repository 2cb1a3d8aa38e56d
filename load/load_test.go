/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipfmt/internal/mapfs"
	"bennypowers.dev/snipfmt/load"
	"bennypowers.dev/snipfmt/snippet"
	"bennypowers.dev/snipfmt/specifier"
	"bennypowers.dev/snipfmt/testutil"
)

func TestLoad_CodeSnippets(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/basic", "/project")

	f, err := load.Load(context.Background(), "js.code-snippets", load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)

	assert.Equal(t, "/project/js.code-snippets", f.Path)
	assert.Equal(t, load.FormatJSON, f.Format)
	assert.True(t, f.Writable())

	log := f.Collection["log"]
	assert.Equal(t, snippet.List("log", "cl"), log.Prefix)
	assert.Equal(t, snippet.List("console.log($1);", "$0"), log.Body)
	assert.Equal(t, "javascript", log.Extra["scope"])
}

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/basic", "/project")

	f, err := load.Load(context.Background(), "/project/css.yaml", load.Options{FS: mfs})
	require.NoError(t, err)

	assert.Equal(t, load.FormatYAML, f.Format)
	assert.Equal(t, "display: flex;\njustify-content: ${1:center};", f.Collection["flex"].Body.First())
}

func TestLoad_Missing(t *testing.T) {
	_, err := load.Load(context.Background(), "nope.json", load.Options{Root: "/project", FS: mapfs.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestLoad_InvalidJSON(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/bad.json", `{"a": {"body": 1}}`, 0644)

	_, err := load.Load(context.Background(), "bad.json", load.Options{Root: "/project", FS: mfs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body")
}

func TestLoad_URL(t *testing.T) {
	var fetched string
	fetcher := load.FetcherFunc(func(_ context.Context, url string) ([]byte, error) {
		fetched = url
		return []byte("a:\n  prefix: a\n  body: $1\n"), nil
	})

	f, err := load.Load(context.Background(), "https://example.com/s.yml?v=2", load.Options{FS: mapfs.New(), Fetcher: fetcher})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s.yml?v=2", fetched)
	assert.Equal(t, load.FormatYAML, f.Format)
	assert.Equal(t, specifier.KindURL, f.Kind)
	assert.False(t, f.Writable())
	assert.Equal(t, "$1", f.Collection["a"].Body.First())
}

func TestLoad_URLWithoutFetcher(t *testing.T) {
	_, err := load.Load(context.Background(), "https://example.com/s.json", load.Options{FS: mapfs.New()})
	assert.ErrorIs(t, err, load.ErrNetworkDisabled)
}

func TestLoad_NPMInstalled(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/node_modules/js-snippets/snippets/js.json", `{"a": {"body": "x"}}`, 0644)

	f, err := load.Load(context.Background(), "npm:js-snippets/snippets/js.json", load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)
	assert.Equal(t, specifier.KindNPM, f.Kind)
	assert.False(t, f.Writable())
}

func TestLoad_NPMCDNFallback(t *testing.T) {
	fetcher := load.FetcherFunc(func(_ context.Context, url string) ([]byte, error) {
		assert.Equal(t, "https://unpkg.com/js-snippets/snippets/js.json", url)
		return []byte(`{"a": {"body": "x"}}`), nil
	})

	opts := load.Options{Root: "/project", FS: mapfs.New(), Fetcher: fetcher}

	_, err := load.Load(context.Background(), "npm:js-snippets/snippets/js.json", opts)
	require.Error(t, err, "fallback is opt-in")

	opts.CDNFallback = true
	f, err := load.Load(context.Background(), "npm:js-snippets/snippets/js.json", opts)
	require.NoError(t, err)
	assert.Equal(t, "https://unpkg.com/js-snippets/snippets/js.json", f.Path)
	assert.Equal(t, "x", f.Collection["a"].Body.First())
}

func TestLoad_NPMCDNFallbackFails(t *testing.T) {
	fetcher := load.FetcherFunc(func(context.Context, string) ([]byte, error) {
		return nil, errors.New("404 Not Found")
	})

	_, err := load.Load(context.Background(), "npm:js-snippets/js.json", load.Options{
		Root: "/project", FS: mapfs.New(), Fetcher: fetcher, CDNFallback: true,
	})
	assert.ErrorIs(t, err, load.ErrLocalResolution)
	assert.ErrorIs(t, err, load.ErrNetworkFallback)
}

func TestWrite_Golden(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/basic", "/project")

	f, err := load.Load(context.Background(), "js.code-snippets", load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)

	require.NoError(t, load.Write(mfs, f, f.Collection))

	written, err := mfs.ReadFile("/project/js.code-snippets")
	require.NoError(t, err)
	testutil.AssertGolden(t, "golden/basic.json", written)
}

func TestWrite_YAMLKeepsFormat(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/basic", "/project")

	f, err := load.Load(context.Background(), "css.yaml", load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)

	out := snippet.Collection{"flex": f.Collection["flex"].WithBody(snippet.String("display: flex;"))}
	require.NoError(t, load.Write(mfs, f, out))

	reread, err := load.Load(context.Background(), "css.yaml", load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)
	assert.Equal(t, out, reread.Collection)
}

func TestWrite_ReadOnly(t *testing.T) {
	err := load.Write(mapfs.New(), &load.File{Spec: "npm:a/b.json", Kind: specifier.KindNPM}, snippet.Collection{})
	assert.ErrorIs(t, err, load.ErrReadOnly)
}

func TestFormatFor(t *testing.T) {
	tests := map[string]load.Format{
		"a.json":                      load.FormatJSON,
		"a.code-snippets":             load.FormatJSON,
		"a.YAML":                      load.FormatYAML,
		"dir/a.yml":                   load.FormatYAML,
		"https://x.test/a.yaml?rev=1": load.FormatYAML,
		"https://x.test/a.json#frag":  load.FormatJSON,
		"noext":                       load.FormatJSON,
	}
	for name, want := range tests {
		assert.Equal(t, want, load.FormatFor(name), name)
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]load.Format{
		"":     load.FormatJSON,
		"json": load.FormatJSON,
		"YAML": load.FormatYAML,
		"yml":  load.FormatYAML,
	} {
		got, err := load.ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := load.ParseFormat("xml")
	assert.ErrorIs(t, err, load.ErrUnknownFormat)
}
