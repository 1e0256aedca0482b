// serve.go implements the "seek serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks handling MCP requests
// over stdio until the client disconnects.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/seek/internal/mcp"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Exposes two tools, search and read_file, plus the seek://files/{path} and
seek://guide resources. Use --no-rg to serve with the in-process search
even when ripgrep is installed:
  seek serve --no-rg`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(e.svc)
		},
	}
}
