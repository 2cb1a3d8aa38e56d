/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"strings"
	"testing"

	"bennypowers.dev/snipfmt/internal/mapfs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec    string
		kind    Kind
		pkg     string
		file    string
	}{
		{"npm:@scope/snippets/snippets/js.json", KindNPM, "@scope/snippets", "snippets/js.json"},
		{"npm:vscode-snippets/js.code-snippets", KindNPM, "vscode-snippets", "js.code-snippets"},
		{"npm:bare", KindNPM, "bare", ""},
		{"https://example.com/js.json", KindURL, "", "https://example.com/js.json"},
		{"http://localhost:8080/a.yaml", KindURL, "", "http://localhost:8080/a.yaml"},
		{"./snippets/js.json", KindLocal, "", "./snippets/js.json"},
		{"npm:@broken", KindLocal, "", "npm:@broken"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got := Parse(tt.spec)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Package != tt.pkg {
				t.Errorf("Package = %q, want %q", got.Package, tt.pkg)
			}
			if got.File != tt.file {
				t.Errorf("File = %q, want %q", got.File, tt.file)
			}
			if got.Raw != tt.spec {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.spec)
			}
		})
	}
}

func TestIsWritable(t *testing.T) {
	if !Parse("a.json").IsWritable() {
		t.Error("expected local path to be writable")
	}
	if Parse("npm:pkg/a.json").IsWritable() {
		t.Error("expected npm specifier to be read-only")
	}
	if Parse("https://example.com/a.json").IsWritable() {
		t.Error("expected URL to be read-only")
	}
}

func TestCDNURL(t *testing.T) {
	url, ok := CDNURL("npm:@scope/pkg/snippets.json")
	if !ok || url != "https://unpkg.com/@scope/pkg/snippets.json" {
		t.Errorf("CDNURL() = %q, %v", url, ok)
	}
	if _, ok := CDNURL("npm:pkg"); ok {
		t.Error("expected no CDN URL without a file")
	}
	if _, ok := CDNURL("local.json"); ok {
		t.Error("expected no CDN URL for local path")
	}
}

func TestResolver_Local(t *testing.T) {
	r := NewResolver(mapfs.New(), "/project")

	rf, err := r.Resolve("snippets/js.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.Path != "/project/snippets/js.json" {
		t.Errorf("Path = %q", rf.Path)
	}

	rf, err = r.Resolve("/abs/js.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.Path != "/abs/js.json" || rf.Kind != KindLocal {
		t.Errorf("got %+v", rf)
	}
}

func TestResolver_NPMWalksUp(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/node_modules/@scope/pkg/snippets/js.json", "{}", 0644)
	r := NewResolver(mfs, "/project/packages/app")

	rf, err := r.Resolve("npm:@scope/pkg/snippets/js.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.Path != "/project/node_modules/@scope/pkg/snippets/js.json" {
		t.Errorf("Path = %q", rf.Path)
	}
	if rf.Kind != KindNPM {
		t.Errorf("Kind = %v, want npm", rf.Kind)
	}
}

func TestResolver_NPMNotFound(t *testing.T) {
	r := NewResolver(mapfs.New(), "/project")

	_, err := r.Resolve("npm:missing/js.json")
	if err == nil || !strings.Contains(err.Error(), "package not found") {
		t.Errorf("expected package not found error, got %v", err)
	}
}

func TestResolver_NPMTraversal(t *testing.T) {
	r := NewResolver(mapfs.New(), "/project")

	_, err := r.Resolve("npm:pkg/../../../etc/passwd")
	if err == nil || !strings.Contains(err.Error(), "path traversal") {
		t.Errorf("expected traversal error, got %v", err)
	}
}

func TestResolver_URL(t *testing.T) {
	r := NewResolver(mapfs.New(), "/project")

	rf, err := r.Resolve("https://example.com/a.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.Kind != KindURL || rf.Path != "https://example.com/a.json" {
		t.Errorf("got %+v", rf)
	}
}
