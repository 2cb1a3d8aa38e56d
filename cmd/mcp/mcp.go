/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command for snipfmt.
package mcp

import (
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/snipfmt/cmd/options"
	"bennypowers.dev/snipfmt/internal/logger"
	"bennypowers.dev/snipfmt/internal/mcpserver"
	"bennypowers.dev/snipfmt/internal/version"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server (stdio transport)",
	Long: `Run snipfmt as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "snipfmt": {
        "command": "snipfmt",
        "args": ["mcp"]
      }
    }
  }

Available tools: format_snippets, inspect_markers`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	options.AddFormatting(Cmd.Flags())
}

func run(cmd *cobra.Command, _ []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)

	cfg, err := options.Config(cmd)
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version.Get(), cfg)
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
