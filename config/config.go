/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for snippet formatting.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Formatter backends.
const (
	FormatterBuiltin  = "builtin"
	FormatterPrettier = "prettier"
)

// Config represents the snipfmt configuration.
type Config struct {
	// Files specifies snippet files to format (paths or globs).
	Files []FileSpec `yaml:"files" json:"files" toml:"files"`

	// Body selects how formatted bodies are written: "string", "lines" or "preserve".
	Body string `yaml:"body" json:"body" toml:"body"`

	// Formatter selects the backend: "builtin" (default) or "prettier".
	Formatter string `yaml:"formatter" json:"formatter" toml:"formatter"`

	// Prettier is the prettier executable used by the prettier backend.
	Prettier string `yaml:"prettier" json:"prettier" toml:"prettier"`

	// Concurrency is the number of snippets formatted at once.
	// Zero or one formats sequentially.
	Concurrency int `yaml:"concurrency" json:"concurrency" toml:"concurrency"`

	// ContinueOnError formats every snippet even when some fail.
	ContinueOnError bool `yaml:"continueOnError" json:"continueOnError" toml:"continueOnError"`

	// Verify checks that markers survive formatting unchanged. On by default.
	Verify bool `yaml:"verify" json:"verify" toml:"verify"`

	// Formatting holds the options handed to the formatter.
	// When empty, the nearest .prettierrc is used instead.
	Formatting Formatting `yaml:"formatting" json:"formatting" toml:"formatting"`
}

// Formatting mirrors the prettier options a host may configure.
// Booleans are pointers so that "unset" and "false" stay distinct.
type Formatting struct {
	PrintWidth         int    `yaml:"printWidth" json:"printWidth" toml:"printWidth"`
	TabWidth           int    `yaml:"tabWidth" json:"tabWidth" toml:"tabWidth"`
	UseTabs            *bool  `yaml:"useTabs" json:"useTabs" toml:"useTabs"`
	Semi               *bool  `yaml:"semi" json:"semi" toml:"semi"`
	SingleQuote        *bool  `yaml:"singleQuote" json:"singleQuote" toml:"singleQuote"`
	TrailingComma      string `yaml:"trailingComma" json:"trailingComma" toml:"trailingComma"`
	BracketSpacing     *bool  `yaml:"bracketSpacing" json:"bracketSpacing" toml:"bracketSpacing"`
	JSXBracketSameLine *bool  `yaml:"jsxBracketSameLine" json:"jsxBracketSameLine" toml:"jsxBracketSameLine"`
	RangeStart         int    `yaml:"rangeStart" json:"rangeStart" toml:"rangeStart"`
	RangeEnd           int    `yaml:"rangeEnd" json:"rangeEnd" toml:"rangeEnd"`
	Parser             string `yaml:"parser" json:"parser" toml:"parser"`
	Filepath           string `yaml:"filepath" json:"filepath" toml:"filepath"`
	RequirePragma      *bool  `yaml:"requirePragma" json:"requirePragma" toml:"requirePragma"`
	InsertPragma       *bool  `yaml:"insertPragma" json:"insertPragma" toml:"insertPragma"`
	ProseWrap          string `yaml:"proseWrap" json:"proseWrap" toml:"proseWrap"`
}

// IsZero reports whether no formatting option is set.
func (f Formatting) IsZero() bool {
	return f == Formatting{}
}

// FileSpec represents a snippet file specification.
// It can be specified as a simple string path or as an object with overrides.
type FileSpec struct {
	// Path is the file path (supports globs).
	Path string `yaml:"path" json:"path" toml:"path"`

	// Parser overrides the formatter parser for this file.
	Parser string `yaml:"parser" json:"parser" toml:"parser"`

	// Body overrides the body shape for this file.
	Body string `yaml:"body" json:"body" toml:"body"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// UnmarshalTOML handles both string and table forms for FileSpec.
func (f *FileSpec) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		f.Path = v
	case map[string]any:
		f.Path, _ = v["path"].(string)
		f.Parser, _ = v["parser"].(string)
		f.Body, _ = v["body"].(string)
	}
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Files:     nil,
		Body:      "string",
		Formatter: FormatterBuiltin,
		Prettier:  "prettier",
		Verify:    true,
	}
}

// FileOptions are the effective settings for one snippet file.
type FileOptions struct {
	Formatting Formatting
	Body       string
}

// OptionsForFile returns the formatting options and body shape for a file.
// File-level overrides take precedence over global config.
func (c *Config) OptionsForFile(path string) FileOptions {
	opts := FileOptions{
		Formatting: c.Formatting,
		Body:       c.Body,
	}

	// Find matching file spec and apply overrides
	for _, spec := range c.Files {
		if spec.Path == path {
			if spec.Parser != "" {
				opts.Formatting.Parser = spec.Parser
			}
			if spec.Body != "" {
				opts.Body = spec.Body
			}
			break
		}
	}

	return opts
}

// FilePaths returns the list of file paths from all FileSpecs.
func (c *Config) FilePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, spec := range c.Files {
		paths = append(paths, spec.Path)
	}
	return paths
}
