package search

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the external tool is missing or could not be
	// started. Service recovers from it by switching to the fallback; it is
	// never returned to callers of Service.Search.
	ErrUnavailable = errors.New("search backend unavailable")

	// ErrOperationFailure means the external tool ran and reported a real
	// error, or did not finish before the timeout.
	ErrOperationFailure = errors.New("search failed")

	// ErrUnknownBackend is returned by Service.SearchWith for a name that is
	// not configured.
	ErrUnknownBackend = errors.New("unknown search backend")

	// errUndecodable marks a file that is not valid UTF-8. Such files are
	// omitted from search results without being reported as skipped.
	errUndecodable = errors.New("file is not valid UTF-8")

	// errLimit stops a walk once the match limit is reached.
	errLimit = errors.New("match limit reached")
)

// stopped converts the error of a context that ended a search. A deadline
// is a timeout and therefore an operation failure; cancellation is returned
// unchanged.
func stopped(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: search timed out: %w", ErrOperationFailure, err)
	}
	return err
}
