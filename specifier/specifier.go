/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier parses snippet file specifiers: local paths, npm package
// files and http(s) URLs.
package specifier

import (
	"regexp"
	"strings"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindLocal is a local file path.
	KindLocal Kind = iota
	// KindNPM is a file inside an installed npm package, e.g. a VS Code
	// extension shipping snippets.
	KindNPM
	// KindURL is an http or https URL.
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindNPM:
		return "npm"
	case KindURL:
		return "url"
	default:
		return "local"
	}
}

// Specifier represents a parsed specifier.
type Specifier struct {
	Kind Kind

	// Package is the npm package name ("@scope/pkg" or "pkg").
	Package string

	// File is the path within the package, the local path, or the URL.
	File string

	// Raw is the original specifier string.
	Raw string
}

// npmPattern matches npm:@scope/pkg/path, npm:pkg/path, or bare npm:pkg
var npmPattern = regexp.MustCompile(`^npm:(@[^/]+/[^/]+|[^/@][^/]*)(/.*)?$`)

// Parse parses a specifier string.
func Parse(spec string) *Specifier {
	if strings.HasPrefix(spec, "npm:") {
		if m := npmPattern.FindStringSubmatch(spec); m != nil {
			return &Specifier{
				Kind:    KindNPM,
				Package: m[1],
				File:    strings.TrimPrefix(m[2], "/"),
				Raw:     spec,
			}
		}
	}

	if IsURL(spec) {
		return &Specifier{Kind: KindURL, File: spec, Raw: spec}
	}

	return &Specifier{Kind: KindLocal, File: spec, Raw: spec}
}

// IsURL reports whether spec is an http or https URL.
func IsURL(spec string) bool {
	return strings.HasPrefix(spec, "https://") || strings.HasPrefix(spec, "http://")
}

// IsWritable reports whether the specifier names a local file.
func (s *Specifier) IsWritable() bool {
	return s.Kind == KindLocal
}

// CDNURL returns the unpkg.com URL for an npm: specifier with a file component.
func CDNURL(spec string) (string, bool) {
	parsed := Parse(spec)
	if parsed.Kind != KindNPM || parsed.File == "" {
		return "", false
	}
	return "https://unpkg.com/" + parsed.Package + "/" + parsed.File, true
}
