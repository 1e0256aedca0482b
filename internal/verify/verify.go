// Package verify checks that the search backends agree.
//
// The ripgrep backend depends on an external tool whose exit-status
// convention and output format can differ between versions. Verify runs
// the same search through every configured backend concurrently, renders
// each result the way "seek search" prints it, and diffs the renderings. An
// empty diff means the installed ripgrep behaves exactly like the
// in-process search for that keyword and directory.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/seek/internal/diff"
	"github.com/jpl-au/seek/internal/grep"
	"github.com/jpl-au/seek/internal/search"
)

// ErrSingleBackend is returned when there is nothing to compare against,
// usually because ripgrep is not installed or was disabled.
var ErrSingleBackend = errors.New("only one search backend configured")

// Source runs named backends. Implemented by service.Service.
type Source interface {
	grep.Source
	SearchWith(ctx context.Context, backend, dir, keyword string) (search.Result, error)
	Backends() []string
}

// Outcome is one backend's result and its rendering.
type Outcome struct {
	Backend string        `json:"backend"`
	Result  search.Result `json:"result"`
	Output  string        `json:"-"`
}

// Report compares the first backend against the second.
type Report struct {
	Outcomes []Outcome   `json:"outcomes"`
	Diff     diff.Result `json:"-"`
	Equal    bool        `json:"equal"`
}

// Run searches with the first two backends and compares their output.
func Run(ctx context.Context, src Source, dir, keyword string) (Report, error) {
	names := src.Backends()
	if len(names) < 2 {
		return Report{}, fmt.Errorf("%w: %v", ErrSingleBackend, names)
	}
	names = names[:2]

	outcomes := make([]Outcome, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			res, err := src.SearchWith(gctx, name, dir, keyword)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			var buf bytes.Buffer
			if err := grep.Write(gctx, &buf, src, res, grep.Options{}); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			outcomes[i] = Outcome{Backend: name, Result: res, Output: buf.String()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	d := diff.Compute(outcomes[0].Output, outcomes[1].Output, outcomes[0].Backend, outcomes[1].Backend)
	return Report{Outcomes: outcomes, Diff: d, Equal: d.Equal}, nil
}
