// Package mcp implements the Model Context Protocol server, exposing seek's
// search and read operations to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/seek/internal/service"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Instructions is returned to clients at initialisation.
const Instructions = "This server provides file search capabilities using ripgrep for fast and efficient searching. " +
	"Results are identical when ripgrep is not installed."

// ToolName identifies one of the tools the server exposes. The set is
// closed: every name has exactly one entry in the tool table.
type ToolName string

const (
	ToolSearch   ToolName = "search"
	ToolReadFile ToolName = "read_file"
)

// tool pairs a tool definition with its handler.
type tool struct {
	def    mcp.Tool
	handle server.ToolHandlerFunc
}

// handlers provides MCP request handlers with access to the file service.
type handlers struct {
	svc service.Service
}

// Serve starts the MCP server over stdio. It returns when the client
// disconnects.
func Serve(svc service.Service) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(svc)

	slog.Info("seek MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(svc service.Service) *server.MCPServer {
	h := &handlers{svc: svc}

	s := server.NewMCPServer(
		"seek",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
		server.WithInstructions(Instructions),
	)

	registerResources(s, h)
	for _, name := range toolNames {
		t := h.tools()[name]
		s.AddTool(t.def, t.handle)
	}
	return s
}

// toolNames fixes the registration order.
var toolNames = []ToolName{ToolSearch, ToolReadFile}

// tools is the dispatch table from tool name to definition and handler.
func (h *handlers) tools() map[ToolName]tool {
	return map[ToolName]tool{
		ToolSearch: {
			def: mcp.NewTool(string(ToolSearch),
				mcp.WithDescription("Search for keywords in text files within the specified directory. "+
					"Matching is a case-sensitive literal substring match per line; binary files are skipped."),
				mcp.WithString("directory", mcp.Required(), mcp.Description("Path to the directory to search")),
				mcp.WithString("keyword", mcp.Required(), mcp.Description("Keyword to search for")),
			),
			handle: h.search,
		},
		ToolReadFile: {
			def: mcp.NewTool(string(ToolReadFile),
				mcp.WithDescription("Read the content of a file from the specified path. "+
					"Binary and non-UTF-8 files are refused with a reason instead of content."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the file to read")),
				mcp.WithNumber("start_line", mcp.Description("First line to return (1-indexed, default: start of file)")),
				mcp.WithNumber("end_line", mcp.Description("Last line to return (1-indexed, default: end of file)")),
			),
			handle: h.readFile,
		},
	}
}
