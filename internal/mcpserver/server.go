/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver provides a Model Context Protocol server for snipfmt.
// It exposes snippet formatting and marker inspection as MCP tools.
package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/snipfmt/config"
)

// NewServer creates an MCP server with all snipfmt tools registered.
// cfg supplies defaults that tool arguments override.
func NewServer(version string, cfg *config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "snipfmt",
		Version: version,
	}, nil)
	registerTools(server, cfg)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// pureAnnotations mark tools that only compute over their input.
func pureAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func registerTools(server *mcp.Server, cfg *config.Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_snippets",
		Description: "Format the bodies of an editor snippet file (VS Code JSON or YAML) while keeping $1, ${1:default} and method markers intact. Returns the re-encoded file.",
		Annotations: pureAnnotations(),
	}, handleFormat(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect_markers",
		Description: "List the tabstops, placeholders and method calls of every snippet in a snippet file, and report markers the formatter cannot protect.",
		Annotations: pureAnnotations(),
	}, handleInspect())
}
