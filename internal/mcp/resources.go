// resources.go implements MCP resource handlers for file and guide access.
//
// MCP resources provide read-only access via URI schemes, enabling LLM
// clients to load context without invoking a tool.
//
// Design: File URIs follow the pattern seek://files/{path}, where path is
// percent-encoded and may be absolute (seek://files//etc/hosts) or relative
// to the server's working directory. Reads go through the same reader as
// read_file, so binary files are refused here too.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/seek/guide"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/validate"
)

const (
	filesPrefix = "seek://files/"
	guideURI    = "seek://guide"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing file path in a resource URI.
	ErrEmptyPath = errors.New("empty file path")
)

// registerResources adds URI-based access for direct file reading and the
// usage guide.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			filesPrefix+"{path}",
			"File",
			mcp.WithTemplateDescription("Read a text file by path"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readFileResource,
	)

	s.AddResource(
		mcp.NewResource(
			guideURI,
			"Guide",
			mcp.WithResourceDescription("Usage guide for seek"),
			mcp.WithMIMEType("text/markdown"),
		),
		h.readGuideResource,
	)
}

// readFileResource handles seek://files/{path} resource requests.
func (h *handlers) readFileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	path, err := parseFileURI(uri)
	if err != nil {
		return nil, err
	}

	res, err := h.svc.ReadFile(ctx, path)
	if err == nil {
		err = res.Err()
	}

	log.Event("mcp:resource", "read").Path(path).Write(err)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", kindOf(err), err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     res.Content,
		},
	}, nil
}

// readGuideResource handles seek://guide resource requests.
func (h *handlers) readGuideResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := guide.Get("")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}

// parseFileURI extracts the file path from seek://files/{path}.
func parseFileURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, filesPrefix) {
		return "", fmt.Errorf("%w: %w: %s", validate.ErrInvalidInput, ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, filesPrefix)
	if rest == "" {
		return "", fmt.Errorf("%w: %w", validate.ErrInvalidInput, ErrEmptyPath)
	}

	path, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %s", validate.ErrInvalidInput, ErrInvalidURI, uri)
	}
	return path, nil
}
