// tools_util.go provides helper functions for MCP tool parameter extraction
// and result construction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map and of turning service errors into tool error
// results.
//
// Design: Optional parameters are extracted permissively. LLMs frequently
// send numbers as strings ("10") or floats (10.0), so integers go through
// spf13/cast rather than a float64 type assertion. Required parameters are
// strict and report invalid_input when missing.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/validate"
)

// errorKind prefixes every tool error result so clients can branch on the
// category without parsing the message.
type errorKind string

const (
	kindInvalidInput     errorKind = "invalid_input"
	kindNotFound         errorKind = "not_found"
	kindPermissionDenied errorKind = "permission_denied"
	kindOperationFailure errorKind = "operation_failure"
	kindDecodeFailure    errorKind = "decode_failure"
	kindCanceled         errorKind = "canceled"
)

// kindOf maps an error from the service to its kind. A ripgrep timeout wraps
// context.DeadlineExceeded but is an operation failure, so the search
// sentinel is checked before the context ones.
func kindOf(err error) errorKind {
	switch {
	case errors.Is(err, validate.ErrInvalidInput), errors.Is(err, search.ErrUnknownBackend),
		errors.Is(err, cat.ErrBinary):
		return kindInvalidInput
	case errors.Is(err, validate.ErrNotFound):
		return kindNotFound
	case errors.Is(err, validate.ErrPermissionDenied):
		return kindPermissionDenied
	case errors.Is(err, cat.ErrDecodeFailure):
		return kindDecodeFailure
	case errors.Is(err, search.ErrOperationFailure):
		return kindOperationFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return kindCanceled
	default:
		return kindOperationFailure
	}
}

// toolError converts err into an MCP error result. Errors are never returned
// as Go errors from handlers; the LLM gets actionable feedback instead of a
// JSON-RPC failure.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", kindOf(err), err))
}

// requireString extracts a required string parameter.
func requireString(req mcp.CallToolRequest, name string) (string, error) {
	v, err := req.RequireString(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s is required", validate.ErrInvalidInput, name)
	}
	return v, nil
}

// getInt extracts an optional integer parameter. A missing or null value
// returns def. A value that cannot be read as an integer is an input error.
func getInt(req mcp.CallToolRequest, name string, def int) (int, error) {
	v, ok := req.GetArguments()[name]
	if !ok || v == nil {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", validate.ErrInvalidInput, name)
	}
	return n, nil
}

// jsonResult serialises any value as pretty-printed JSON and wraps it in an
// MCP text result. LLMs parse indented output more reliably.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
