/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	fieldPrefix      = "prefix"
	fieldBody        = "body"
	fieldDescription = "description"
)

// ParseJSON parses a snippet file. Comments and trailing commas are allowed,
// as in VSCode .code-snippets files.
func ParseJSON(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(jsonc.ToJSON(data), &c); err != nil {
		return nil, fmt.Errorf("failed to parse snippets JSON: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// EncodeJSON writes a collection as indented JSON without HTML escaping.
func EncodeJSON(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseYAML parses a snippet collection written as YAML.
func ParseYAML(data []byte) (Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse snippets YAML: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// EncodeYAML writes a collection as YAML.
func EncodeYAML(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON writes a string or a list of strings.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.list {
		values := t.values
		if values == nil {
			values = []string{}
		}
		return marshalJSON(values)
	}
	return marshalJSON(t.First())
}

// UnmarshalJSON accepts a string or a list of strings.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = String(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*t = List(list...)
	return nil
}

// MarshalYAML writes a string or a list of strings.
func (t Text) MarshalYAML() (any, error) {
	if t.list {
		return t.Values(), nil
	}
	return t.First(), nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = String(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = List(list...)
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// MarshalJSON writes prefix, body and description first, then any other
// fields in sorted order.
func (s Snippet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	write := func(key string, value any) error {
		data, err := marshalJSON(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := marshalJSON(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(data)
		return nil
	}

	if !s.Prefix.IsZero() {
		if err := write(fieldPrefix, s.Prefix); err != nil {
			return nil, err
		}
	}
	if err := write(fieldBody, s.Body); err != nil {
		return nil, err
	}
	if s.Description != "" || s.emptyDescription {
		if err := write(fieldDescription, s.Description); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(s.Extra) {
		if err := write(key, s.Extra[key]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the known fields and keeps every other field in Extra.
func (s *Snippet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Snippet{}
	for key, value := range raw {
		switch key {
		case fieldPrefix:
			if err := s.Prefix.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case fieldBody:
			if err := s.Body.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case fieldDescription:
			if err := json.Unmarshal(value, &s.Description); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			s.emptyDescription = s.Description == ""
		default:
			dec := json.NewDecoder(bytes.NewReader(value))
			dec.UseNumber()
			var v any
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[key] = v
		}
	}
	return nil
}

// MarshalYAML writes the same field order as MarshalJSON.
func (s Snippet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, value any) error {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &v)
		return nil
	}

	if !s.Prefix.IsZero() {
		if err := add(fieldPrefix, s.Prefix); err != nil {
			return nil, err
		}
	}
	if err := add(fieldBody, s.Body); err != nil {
		return nil, err
	}
	if s.Description != "" || s.emptyDescription {
		if err := add(fieldDescription, s.Description); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(s.Extra) {
		if err := add(key, s.Extra[key]); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// UnmarshalYAML reads the known fields and keeps every other field in Extra.
func (s *Snippet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: snippet must be a mapping", node.Line)
	}

	*s = Snippet{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case fieldPrefix:
			if err := s.Prefix.UnmarshalYAML(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case fieldBody:
			if err := s.Body.UnmarshalYAML(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case fieldDescription:
			if err := value.Decode(&s.Description); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			s.emptyDescription = s.Description == ""
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[key] = v
		}
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
