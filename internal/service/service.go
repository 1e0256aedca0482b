// Package service defines the shared interface for search and read
// operations. Commands, MCP tools and extensions depend on this interface
// rather than the concrete finder, enabling testing with stubs.
package service

import (
	"context"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/search"
)

// Service defines all file operations.
//
// Use finder.New() to obtain a Service implementation.
//
// Example:
//
//	svc, err := finder.New(finder.Options{})
//	if err != nil {
//	    return err
//	}
//	res, err := svc.Search(ctx, ".", "TODO")
type Service interface {
	// Search returns every line under dir containing keyword, using ripgrep
	// when available and the in-process walk otherwise. Returns errors
	// wrapping validate.ErrInvalidInput, validate.ErrNotFound,
	// validate.ErrPermissionDenied or search.ErrOperationFailure.
	Search(ctx context.Context, dir, keyword string) (search.Result, error)

	// SearchWith runs one named backend with no fallback, so the backends
	// can be compared. Names come from Backends.
	SearchWith(ctx context.Context, backend, dir, keyword string) (search.Result, error)

	// Backends lists the configured backend names, preferred first.
	Backends() []string

	// ReadFile returns a text file's content, or a refused result for
	// binary and undecodable files.
	ReadFile(ctx context.Context, path string) (cat.Result, error)

	// MaxLineLength returns the configured maximum line length for scanning.
	MaxLineLength() int
}
