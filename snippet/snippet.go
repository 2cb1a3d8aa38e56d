/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package snippet models editor snippet collections as found in VSCode
// snippet files.
package snippet

import (
	"fmt"
	"sort"
	"strings"
)

// Text is a string that snippet files may also spell as a list of strings.
// It remembers which form it was given in so it can be written back the same way.
type Text struct {
	values []string
	list   bool
}

// String returns a Text in single-string form.
func String(s string) Text {
	return Text{values: []string{s}}
}

// List returns a Text in list form.
func List(values ...string) Text {
	return Text{values: append([]string{}, values...), list: true}
}

// IsList reports whether t was given as a list.
func (t Text) IsList() bool {
	return t.list
}

// IsZero reports whether t holds no value at all.
func (t Text) IsZero() bool {
	return len(t.values) == 0 && !t.list
}

// Values returns the strings of t. A single string yields one value.
func (t Text) Values() []string {
	return append([]string(nil), t.values...)
}

// First returns the first value, or "".
func (t Text) First() string {
	if len(t.values) == 0 {
		return ""
	}
	return t.values[0]
}

// Join concatenates the values with sep.
func (t Text) Join(sep string) string {
	return strings.Join(t.values, sep)
}

// ResolveBody joins a list body with newlines. A string body is returned as is.
func ResolveBody(body Text) string {
	return body.Join("\n")
}

// Snippet is one entry of a snippet file.
type Snippet struct {
	// Prefix is the trigger text, a string or a list of strings.
	Prefix Text

	// Body is the template text.
	Body Text

	// Description is shown by the editor next to the completion.
	Description string

	// Extra holds every other field (scope, isFileTemplate, ...) unchanged.
	Extra map[string]any

	// emptyDescription records a "description" field that was present but empty,
	// so it is written back.
	emptyDescription bool
}

// WithBody returns a shallow copy of s with its body replaced.
func (s Snippet) WithBody(body Text) Snippet {
	s.Body = body
	return s
}

// Collection maps snippet names to snippets.
type Collection map[string]Snippet

// Names returns the snippet names in sorted order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shape selects how formatted bodies are written back.
type Shape string

const (
	// ShapeString writes every body as one string.
	ShapeString Shape = "string"

	// ShapeLines writes every body as a list of lines.
	ShapeLines Shape = "lines"

	// ShapePreserve writes each body in the form it was read in.
	ShapePreserve Shape = "preserve"
)

// ValidShapes returns the accepted Shape names.
func ValidShapes() []string {
	return []string{string(ShapeString), string(ShapeLines), string(ShapePreserve)}
}

// ParseShape parses a shape name. The empty string means ShapeString.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", ShapeString:
		return ShapeString, nil
	case ShapeLines, ShapePreserve:
		return Shape(s), nil
	default:
		return "", fmt.Errorf("invalid body shape %q: expected one of %s", s, strings.Join(ValidShapes(), ", "))
	}
}

// Reshape converts a body string into the requested shape.
// For ShapePreserve the shape of original decides.
func Reshape(body string, shape Shape, original Text) Text {
	if shape == ShapePreserve {
		shape = ShapeString
		if original.IsList() {
			shape = ShapeLines
		}
	}
	if shape == ShapeLines {
		return List(strings.Split(body, "\n")...)
	}
	return String(body)
}
