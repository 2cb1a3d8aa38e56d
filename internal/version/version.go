/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides version information for the snipfmt CLI.
package version

import (
	"runtime/debug"
	"strings"
)

// Set at build time via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

const grammarPrefix = "github.com/tree-sitter/tree-sitter-"

// Get returns the version string for the application.
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "(devel)" && v != "" {
			return v
		}
	}
	if GitCommit != "unknown" {
		v := "dev-" + short(GitCommit)
		if GitDirty == "dirty" {
			v += "-dirty"
		}
		return v
	}
	return "dev"
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// BuildInfo describes the binary and the grammars the builtin formatter was
// built with.
type BuildInfo struct {
	Version   string            `json:"version"`
	GitCommit string            `json:"gitCommit"`
	BuildTime string            `json:"buildTime"`
	Dirty     bool              `json:"dirty"`
	GoVersion string            `json:"goVersion,omitempty"`
	Grammars  map[string]string `json:"grammars,omitempty"`
}

// Info returns detailed build information.
func Info() BuildInfo {
	bi := BuildInfo{
		Version:   Get(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		bi.Grammars = grammars(info.Deps)
	}
	return bi
}

// grammars maps tree-sitter grammar names (css, html, ...) to module versions.
func grammars(deps []*debug.Module) map[string]string {
	result := make(map[string]string)
	for _, dep := range deps {
		if name, ok := strings.CutPrefix(dep.Path, grammarPrefix); ok {
			result[name] = dep.Version
		}
	}
	return result
}
