/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	snipfs "bennypowers.dev/snipfmt/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "snipfmt"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// prettierFiles are the prettier config files read as a formatting fallback, in priority order.
var prettierFiles = []string{".prettierrc", ".prettierrc.json", ".prettierrc.yaml", ".prettierrc.yml", ".prettierrc.toml"}

// Load searches for .config/snipfmt.{yaml,yml,json,toml} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem snipfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := Default()
		if err := decode(data, ext, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}

		return cfg, nil
	}

	return nil, nil
}

// LoadPrettierRC reads formatting options from the first prettier config
// file found in rootDir. Returns nil if none exists.
func LoadPrettierRC(filesystem snipfs.FileSystem, rootDir string) (*Formatting, error) {
	for _, name := range prettierFiles {
		path := filepath.Join(rootDir, name)
		if !filesystem.Exists(path) {
			continue
		}

		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, err
		}

		ext := filepath.Ext(name)
		if ext == ".prettierrc" || ext == "" {
			// The bare .prettierrc may hold JSON or YAML
			ext = ".yaml"
			if isLikelyJSON(data) {
				ext = ".json"
			}
		}

		formatting := &Formatting{}
		if err := decode(data, ext, formatting); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return formatting, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
// When the config sets no formatting options, those of .prettierrc are used.
func LoadOrDefault(filesystem snipfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		cfg = Default()
	}

	if cfg.Formatting.IsZero() {
		if rc, err := LoadPrettierRC(filesystem, rootDir); err == nil && rc != nil {
			cfg.Formatting = *rc
		}
	}

	return cfg
}

func decode(data []byte, ext string, v any) error {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".json":
		return json.Unmarshal(jsonc.ToJSON(data), v)
	case ".toml":
		_, err := toml.Decode(string(data), v)
		return err
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
}

func isLikelyJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ResolvedFile is a snippet file matched by the config with its effective options.
type ResolvedFile struct {
	Path    string
	Options FileOptions
}

// ExpandFiles expands glob patterns in Files and returns absolute paths.
func (c *Config) ExpandFiles(filesystem snipfs.FileSystem, rootDir string) ([]string, error) {
	resolved, err := c.ResolveFiles(filesystem, rootDir)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(resolved))
	for _, file := range resolved {
		result = append(result, file.Path)
	}
	return result, nil
}

// ResolveFiles expands glob patterns and pairs every file with the options
// of the FileSpec that matched it. A file matched twice keeps its first spec.
func (c *Config) ResolveFiles(filesystem snipfs.FileSystem, rootDir string) ([]ResolvedFile, error) {
	var result []ResolvedFile
	seen := make(map[string]bool)

	for _, spec := range c.Files {
		expanded, err := expandFilePath(filesystem, rootDir, spec.Path)
		if err != nil {
			return nil, err
		}

		opts := c.OptionsForFile(spec.Path)
		for _, path := range expanded {
			if seen[path] {
				continue
			}
			seen[path] = true
			result = append(result, ResolvedFile{Path: path, Options: opts})
		}
	}

	return result, nil
}

// expandFilePath expands a single file path which may contain globs.
func expandFilePath(filesystem snipfs.FileSystem, rootDir, pattern string) ([]string, error) {
	// Make pattern absolute if relative
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	// Check if pattern contains glob characters
	if !containsGlob(pattern) {
		// Not a glob, return the path directly (errors handled when file is read)
		return []string{pattern}, nil
	}

	// Expand glob pattern using fs.WalkDir
	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the filesystem.
func expandGlob(filesystem snipfs.FileSystem, pattern string) ([]string, error) {
	// Find the base directory (non-glob prefix)
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	// Get the relative pattern from baseDir
	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Get path relative to baseDir for matching
		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if matchDoublestar(relPattern, relPath) {
			matches = append(matches, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return matches, nil
}

// matchDoublestar provides ** glob matching using the doublestar library.
// Supports patterns like snippets/**/*.code-snippets
func matchDoublestar(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}
