/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"
	"strings"

	snipfs "bennypowers.dev/snipfmt/fs"
)

// ResolvedFile preserves both the original specifier and where it points.
type ResolvedFile struct {
	// Specifier is the original specifier (e.g., "npm:some-snippets/snippets/js.json").
	Specifier string

	// Path is the filesystem path, or the URL for KindURL.
	Path string

	Kind Kind
}

// Resolver resolves specifiers against a root directory.
type Resolver struct {
	fs      snipfs.FileSystem
	rootDir string
}

// NewResolver creates a resolver. rootDir anchors relative paths and is the
// starting directory for node_modules lookup.
func NewResolver(fs snipfs.FileSystem, rootDir string) *Resolver {
	return &Resolver{fs: fs, rootDir: rootDir}
}

// Resolve maps spec to a readable location. URLs pass through unchanged.
func (r *Resolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	switch parsed.Kind {
	case KindURL:
		return &ResolvedFile{Specifier: spec, Path: spec, Kind: KindURL}, nil
	case KindNPM:
		return r.resolveNPM(parsed)
	default:
		path := parsed.File
		if !filepath.IsAbs(path) && r.rootDir != "" {
			path = filepath.Join(r.rootDir, path)
		}
		return &ResolvedFile{Specifier: spec, Path: path, Kind: KindLocal}, nil
	}
}

// resolveNPM walks up from rootDir looking for node_modules/<pkg>/<file>.
func (r *Resolver) resolveNPM(parsed *Specifier) (*ResolvedFile, error) {
	dir := r.rootDir
	if !filepath.IsAbs(dir) {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
		}
		dir = absDir
	}
	startDir := dir

	for {
		base := filepath.Join(dir, "node_modules")
		candidate := filepath.Clean(filepath.Join(base, parsed.Package, parsed.File))
		if !isInsideDir(candidate, base) {
			return nil, fmt.Errorf("path traversal detected in specifier: %s", parsed.Raw)
		}
		if r.fs.Exists(candidate) {
			return &ResolvedFile{Specifier: parsed.Raw, Path: candidate, Kind: KindNPM}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, fmt.Errorf("package not found: %s (looked in node_modules starting from %s)", parsed.Package, startDir)
}

func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
