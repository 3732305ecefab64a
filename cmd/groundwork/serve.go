// Package main provides the entry point for the groundwork CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	groundworkmcp "github.com/groundworkhq/groundwork/internal/mcp"
	"github.com/groundworkhq/groundwork/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run groundwork as a Model Context Protocol (MCP) server over stdio.

This exposes the questionnaire, profile, and document generation as MCP
tools, so a chat agent (an IDE chat panel, Claude Code, Cursor, and so
on) can interview you conversationally and write the same files the CLI
does.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "groundwork": {
        "command": "groundwork",
        "args": ["serve"]
      }
    }
  }

Available tools: intake_next, intake_answer, intake_back, intake_skip,
intake_restart, intake_status, profile_get, profile_patch, generate_doc,
list_frameworks`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
			sess, err := openSession(printer)
			if err != nil {
				return err
			}
			server := groundworkmcp.NewServer(buildVersion(), sess)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
