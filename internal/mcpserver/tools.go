/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/snipfmt/config"
	"bennypowers.dev/snipfmt/internal/service"
	"bennypowers.dev/snipfmt/load"
)

// --- Shared types ---

// SnippetFailure names a snippet the formatter rejected.
type SnippetFailure struct {
	Name  string `json:"name"  jsonschema:"snippet name"`
	Error string `json:"error" jsonschema:"formatter error"`
}

// --- Format tool ---

// FormatInput is the input for the format_snippets tool.
type FormatInput struct {
	Content         string `json:"content"                   jsonschema:"snippet file content"`
	Format          string `json:"format,omitempty"          jsonschema:"json (default, comments allowed) or yaml"`
	Parser          string `json:"parser,omitempty"          jsonschema:"formatter parser, e.g. babel, css, html, php"`
	Formatter       string `json:"formatter,omitempty"       jsonschema:"builtin (default) or prettier"`
	Body            string `json:"body,omitempty"            jsonschema:"body shape: string, lines or preserve"`
	PrintWidth      int    `json:"printWidth,omitempty"      jsonschema:"line width hint"`
	TabWidth        int    `json:"tabWidth,omitempty"        jsonschema:"spaces per indentation level"`
	UseTabs         *bool  `json:"useTabs,omitempty"         jsonschema:"indent with tabs"`
	Semi            *bool  `json:"semi,omitempty"            jsonschema:"print semicolons"`
	SingleQuote     *bool  `json:"singleQuote,omitempty"     jsonschema:"prefer single quotes"`
	ContinueOnError bool   `json:"continueOnError,omitempty" jsonschema:"keep failed snippets unchanged instead of failing"`
}

// FormatOutput is the output for the format_snippets tool.
type FormatOutput struct {
	Content  string           `json:"content"            jsonschema:"formatted snippet file"`
	Failures []SnippetFailure `json:"failures,omitempty" jsonschema:"snippets left unchanged because formatting failed"`
}

func handleFormat(base *config.Config) mcp.ToolHandlerFor[FormatInput, FormatOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FormatInput) (*mcp.CallToolResult, FormatOutput, error) {
		format, err := load.ParseFormat(input.Format)
		if err != nil {
			return nil, FormatOutput{}, err
		}

		cfg := *base
		if input.Formatter != "" {
			cfg.Formatter = input.Formatter
		}
		if input.ContinueOnError {
			cfg.ContinueOnError = true
		}

		opts := config.FileOptions{Formatting: cfg.Formatting, Body: cfg.Body}
		if input.Body != "" {
			opts.Body = input.Body
		}
		f := &opts.Formatting
		if input.Parser != "" {
			f.Parser = input.Parser
		}
		if input.PrintWidth > 0 {
			f.PrintWidth = input.PrintWidth
		}
		if input.TabWidth > 0 {
			f.TabWidth = input.TabWidth
		}
		if input.UseTabs != nil {
			f.UseTabs = input.UseTabs
		}
		if input.Semi != nil {
			f.Semi = input.Semi
		}
		if input.SingleQuote != nil {
			f.SingleQuote = input.SingleQuote
		}

		data, err := service.FormatDocument(ctx, &cfg, opts, format, []byte(input.Content))
		if data == nil {
			return nil, FormatOutput{}, fmt.Errorf("formatting snippets: %w", err)
		}

		out := FormatOutput{Content: string(data)}
		for _, failure := range service.SnippetErrors(err) {
			out.Failures = append(out.Failures, SnippetFailure{Name: failure.Name, Error: failure.Err.Error()})
		}
		return nil, out, nil
	}
}

// --- Inspect tool ---

// InspectInput is the input for the inspect_markers tool.
type InspectInput struct {
	Content string `json:"content"          jsonschema:"snippet file content"`
	Format  string `json:"format,omitempty" jsonschema:"json (default, comments allowed) or yaml"`
}

// InspectOutput is the output for the inspect_markers tool.
type InspectOutput struct {
	Snippets []service.Report `json:"snippets" jsonschema:"markers per snippet, in name order"`
}

func handleInspect() mcp.ToolHandlerFor[InspectInput, InspectOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InspectInput) (*mcp.CallToolResult, InspectOutput, error) {
		format, err := load.ParseFormat(input.Format)
		if err != nil {
			return nil, InspectOutput{}, err
		}

		c, err := load.Decode(format, []byte(input.Content))
		if err != nil {
			return nil, InspectOutput{}, err
		}

		return nil, InspectOutput{Snippets: service.Inspect(c)}, nil
	}
}
