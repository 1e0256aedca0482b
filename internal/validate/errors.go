// errors.go defines the sentinel error kinds shared by search and read.
//
// Separated to centralise the kinds that cross package boundaries. The MCP
// layer maps these to a stable prefix in tool error results, so callers can
// tell "bad input" from "missing file" without parsing messages.
//
// Design: Sentinel errors (not error types) because callers only branch on
// the category. Detail is added by wrapping with fmt.Errorf("%w: ...").

package validate

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)
