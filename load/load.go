/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load reads and writes snippet files.
package load

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bennypowers.dev/snipfmt/fs"
	"bennypowers.dev/snipfmt/snippet"
	"bennypowers.dev/snipfmt/specifier"
)

var (
	// ErrLocalResolution indicates that local filesystem resolution failed.
	ErrLocalResolution = errors.New("local resolution failed")

	// ErrNetworkFallback indicates that the CDN network fallback also failed.
	ErrNetworkFallback = errors.New("network fallback failed")

	// ErrNetworkDisabled is returned for URL specifiers when no Fetcher is set.
	ErrNetworkDisabled = errors.New("network access disabled")

	// ErrReadOnly is returned when writing to a package or URL specifier.
	ErrReadOnly = errors.New("snippet source is read-only")
)

// Format is the encoding of a snippet file.
type Format string

const (
	// FormatJSON covers .json and .code-snippets files, comments allowed.
	FormatJSON Format = "json"
	// FormatYAML covers .yaml and .yml files.
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a path or URL extension.
// Anything that is not YAML is read as JSON.
func FormatFor(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Host != "" {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unsupported format")

// ParseFormat maps a format name to a Format. The empty name means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "json", "jsonc":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q (want json or yaml)", ErrUnknownFormat, name)
	}
}

// Options configures how snippet files are read.
type Options struct {
	// Root anchors relative paths and npm: lookups. Defaults to ".".
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Fetcher enables URL specifiers and, with CDNFallback, unpkg.com
	// fallback for npm: specifiers that are not installed.
	// Nil means no network access.
	Fetcher Fetcher

	CDNFallback bool

	// FetchTimeout defaults to DefaultTimeout when zero.
	FetchTimeout time.Duration
}

// File is a loaded snippet file.
type File struct {
	// Spec is the specifier as given.
	Spec string

	// Path is the resolved path or URL.
	Path string

	Kind       specifier.Kind
	Format     Format
	Collection snippet.Collection
}

// Writable reports whether the file can be written back in place.
func (f *File) Writable() bool {
	return f.Kind == specifier.KindLocal
}

// Load reads and decodes the snippet file named by spec.
//
// The specifier can be:
//   - Local file path: "snippets/js.json" or "/path/to/js.code-snippets"
//   - npm package file: "npm:some-extension/snippets/js.json" (requires node_modules)
//   - URL: "https://example.com/snippets.yaml" (requires Options.Fetcher)
func Load(ctx context.Context, spec string, opts Options) (*File, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	fetchTimeout := opts.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = DefaultTimeout
	}

	resolved, content, err := resolveContent(ctx, spec, root, filesystem, opts, fetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve specifier %q: %w", spec, err)
	}

	format := FormatFor(resolved.Path)
	c, err := Decode(format, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, err)
	}

	return &File{
		Spec:       spec,
		Path:       resolved.Path,
		Kind:       resolved.Kind,
		Format:     format,
		Collection: c,
	}, nil
}

// Decode parses content in the given format.
func Decode(format Format, content []byte) (snippet.Collection, error) {
	if format == FormatYAML {
		return snippet.ParseYAML(content)
	}
	return snippet.ParseJSON(content)
}

// Encode serializes a collection in the given format.
func Encode(format Format, c snippet.Collection) ([]byte, error) {
	if format == FormatYAML {
		return snippet.EncodeYAML(c)
	}
	return snippet.EncodeJSON(c)
}

// Write replaces the file's content with c, in the file's own format.
func Write(filesystem fs.FileSystem, f *File, c snippet.Collection) error {
	if !f.Writable() {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.Spec)
	}
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	data, err := Encode(f.Format, c)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.Path, err)
	}

	var mode iofs.FileMode = defaultFileMode
	if info, err := filesystem.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := filesystem.WriteFile(f.Path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}

const defaultFileMode = 0o644

// resolveContent resolves a specifier to its content. Local resolution comes
// first; a Fetcher serves URLs and, when enabled, the CDN fallback.
func resolveContent(ctx context.Context, spec, root string, filesystem fs.FileSystem, opts Options, fetchTimeout time.Duration) (*specifier.ResolvedFile, []byte, error) {
	res := specifier.NewResolver(filesystem, root)

	resolved, err := res.Resolve(spec)
	if err != nil {
		return fetchFromCDN(ctx, spec, opts, fetchTimeout, err)
	}

	if resolved.Kind == specifier.KindURL {
		if opts.Fetcher == nil {
			return nil, nil, ErrNetworkDisabled
		}
		content, err := fetch(ctx, opts.Fetcher, resolved.Path, fetchTimeout)
		if err != nil {
			return nil, nil, err
		}
		return resolved, content, nil
	}

	content, readErr := filesystem.ReadFile(resolved.Path)
	if readErr != nil {
		localErr := fmt.Errorf("failed to read %s: %w", resolved.Path, readErr)
		return fetchFromCDN(ctx, spec, opts, fetchTimeout, localErr)
	}

	return resolved, content, nil
}

// fetchFromCDN attempts to fetch an npm: file from unpkg.com.
// Returns localErr when fallback is disabled or spec has no CDN URL.
func fetchFromCDN(ctx context.Context, spec string, opts Options, fetchTimeout time.Duration, localErr error) (*specifier.ResolvedFile, []byte, error) {
	if opts.Fetcher == nil || !opts.CDNFallback {
		return nil, nil, localErr
	}

	cdnURL, ok := specifier.CDNURL(spec)
	if !ok {
		return nil, nil, localErr
	}

	content, fetchErr := fetch(ctx, opts.Fetcher, cdnURL, fetchTimeout)
	if fetchErr != nil {
		return nil, nil, fmt.Errorf("%w (%w), %w: %w", ErrLocalResolution, localErr, ErrNetworkFallback, fetchErr)
	}

	return &specifier.ResolvedFile{Specifier: spec, Path: cdnURL, Kind: specifier.KindURL}, content, nil
}

func fetch(ctx context.Context, fetcher Fetcher, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fetcher.Fetch(ctx, url)
}
