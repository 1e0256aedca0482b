// fallback.go implements the in-process search backend.
//
// Used when ripgrep is not installed. Reproduces the ripgrep invocation's
// semantics: literal case-sensitive match, hidden and ignored files included,
// symlinks followed, entries visited in sorted order.
//
// Design: The walk is depth-first and strictly sequential. os.ReadDir returns
// entries sorted by name, which makes the traversal order (and therefore the
// result order) reproducible and equal to ripgrep's --sort path. Symlink
// loops are broken by tracking the canonical paths of the directories on the
// current descent, the same ancestor check ripgrep applies with --follow.

package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jpl-au/seek/internal/classify"
)

// Fallback searches by walking the directory tree in-process.
type Fallback struct {
	opts Options
}

var _ Backend = (*Fallback)(nil)

// NewFallback creates the in-process backend.
func NewFallback(opts Options) *Fallback {
	return &Fallback{opts: opts}
}

// Name returns "fallback".
func (f *Fallback) Name() string { return "fallback" }

// Search walks dir and returns every matching line. Per-entry failures are
// recorded in Result.Skipped; only the end of ctx aborts the walk.
func (f *Fallback) Search(ctx context.Context, dir, keyword string) (Result, error) {
	w := &walker{
		ctx:      ctx,
		keyword:  keyword,
		opts:     f.opts,
		ancestry: make(map[string]bool),
	}
	err := w.walkDir(dir, 0)
	if err != nil && !errors.Is(err, errLimit) {
		return Result{}, stopped(err)
	}
	w.result.finish(f.Name())
	return w.result, nil
}

// walker holds the state of one Search call. Never shared between calls.
type walker struct {
	ctx      context.Context
	keyword  string
	opts     Options
	ancestry map[string]bool // canonical paths of directories being descended
	result   Result
}

func (w *walker) skip(path string) {
	w.result.Skipped = append(w.result.Skipped, path)
}

// walkDir visits the entries of dir, which sits at the given depth (the
// search root is depth 0, its entries depth 1).
func (w *walker) walkDir(dir string, depth int) error {
	canon, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.skip(dir)
		return nil
	}
	if w.ancestry[canon] {
		// Symlink back to a directory we are already inside.
		w.skip(dir)
		return nil
	}
	w.ancestry[canon] = true
	defer delete(w.ancestry, canon)

	// ReadDir returns the entries it managed to read alongside any error.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.skip(dir)
	}

	for _, e := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		p := filepath.Join(dir, e.Name())
		// os.Stat follows symlinks so linked files and directories are searched.
		info, err := os.Stat(p)
		if err != nil {
			w.skip(p)
			continue
		}

		switch {
		case info.IsDir():
			if w.opts.MaxDepth > 0 && depth+1 >= w.opts.MaxDepth {
				continue
			}
			if err := w.walkDir(p, depth+1); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := w.searchFile(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// searchFile adds the matches from a single file. Binary and undecodable
// files contribute nothing; unreadable files are recorded as skipped.
func (w *walker) searchFile(path string) error {
	kind, err := classify.File(path, w.opts.SampleSize)
	if err != nil {
		w.skip(path)
		return nil
	}
	if kind == classify.Binary {
		return nil
	}

	matches, err := matchFile(path, w.keyword, w.opts.MaxLineLength)
	if errors.Is(err, errUndecodable) {
		return nil
	}
	if err != nil {
		w.skip(path)
		return nil
	}

	for _, m := range matches {
		if !w.result.add(m, w.opts.MaxMatches) {
			return errLimit
		}
	}
	return nil
}
