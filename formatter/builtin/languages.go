/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builtin

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	"golang.org/x/text/cases"

	"bennypowers.dev/snipfmt/formatter"
)

// ErrUnsupportedParser is returned for parser names with no bundled grammar.
var ErrUnsupportedParser = errors.New("unsupported parser")

// DefaultParser is used when neither a parser nor a file path is given.
const DefaultParser = "babel"

// language describes how to lay out one grammar.
type language struct {
	name string
	ts   *tree_sitter.Language

	// indent lists node kinds whose contents sit one level deeper.
	indent map[string]bool

	// closers lists node kinds that close an indenting node, besides brackets.
	closers map[string]bool

	// verbatim lists node kinds whose inner lines are never touched.
	verbatim map[string]bool

	// pragma is inserted by the insertPragma option.
	pragma string
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

var javascript = &language{
	name: "javascript",
	ts:   tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
	indent: set(
		"statement_block", "class_body", "object", "array", "arguments",
		"formal_parameters", "object_pattern", "array_pattern", "switch_body",
		"switch_case", "switch_default", "named_imports", "export_clause",
		"parenthesized_expression", "jsx_element",
	),
	closers:  set("jsx_closing_element"),
	verbatim: set("comment", "string", "template_string", "regex", "jsx_text"),
	pragma:   "/** @format */",
}

var css = &language{
	name:     "css",
	ts:       tree_sitter.NewLanguage(tree_sitter_css.Language()),
	indent:   set("block", "keyframe_block_list", "arguments"),
	verbatim: set("comment", "string_value"),
	pragma:   "/** @format */",
}

var html = &language{
	name:     "html",
	ts:       tree_sitter.NewLanguage(tree_sitter_html.Language()),
	indent:   set("element", "script_element", "style_element"),
	closers:  set("end_tag"),
	verbatim: set("comment", "raw_text", "quoted_attribute_value"),
	pragma:   "<!-- @format -->",
}

var php = &language{
	name: "php",
	ts:   tree_sitter.NewLanguage(tree_sitter_php.LanguagePHPOnly()),
	indent: set(
		"compound_statement", "declaration_list", "arguments", "formal_parameters",
		"array_creation_expression", "switch_block", "case_statement",
		"default_statement", "enum_declaration_list", "match_block",
	),
	verbatim: set("comment", "string", "encapsed_string", "heredoc", "nowdoc"),
	pragma:   "/** @format */",
}

// parsers maps prettier parser names to bundled grammars.
var parsers = map[string]*language{
	"babel":   javascript,
	"flow":    javascript,
	"acorn":   javascript,
	"espree":  javascript,
	"meriyah": javascript,
	"css":     css,
	"scss":    css,
	"less":    css,
	"html":    html,
	"vue":     html,
	"angular": html,
	"php":     php,
}

// extensions infers a parser from the filepath option.
var extensions = map[string]string{
	".js":   "babel",
	".mjs":  "babel",
	".cjs":  "babel",
	".jsx":  "babel",
	".css":  "css",
	".scss": "scss",
	".less": "less",
	".html": "html",
	".htm":  "html",
	".vue":  "vue",
	".php":  "php",
}

// Parsers returns the parser names the builtin formatter understands.
func Parsers() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	return names
}

func languageFor(opts formatter.Options) (*language, error) {
	name := opts.Parser
	if name == "" && opts.Filepath != "" {
		name = extensions[strings.ToLower(filepath.Ext(opts.Filepath))]
		if name == "" {
			return nil, fmt.Errorf("%w: cannot infer parser for %s", ErrUnsupportedParser, opts.Filepath)
		}
	}
	if name == "" {
		name = DefaultParser
	}

	lang, ok := parsers[cases.Fold().String(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedParser, name)
	}
	return lang, nil
}
