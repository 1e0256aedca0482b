// Package search implements keyword search across a directory tree.
//
// Two backends satisfy the same Backend interface: Ripgrep delegates to the
// external rg binary, and Fallback walks the tree in-process. Service picks
// between them: ripgrep when it is installed, the fallback when ripgrep is
// absent or cannot be started. Both backends apply the same classification,
// decoding and ordering rules so the caller cannot tell which one ran.
package search

import "context"

// Match is a single line that contains the keyword.
type Match struct {
	Path string `json:"file_path"`
	Line int    `json:"line_number"` // 1-indexed
	Text string `json:"line_text"`   // whitespace-trimmed
}

// Result is the complete outcome of one search call.
//
// Matches are grouped by file in traversal order (depth-first, directory
// entries in lexicographic order) and by ascending line number within a
// file. An empty Matches slice is a successful "no matches" result.
type Result struct {
	Matches   []Match `json:"matches"`
	Count     int     `json:"count"`
	Truncated bool    `json:"truncated"` // stopped at the configured match limit

	// Skipped lists entries that could not be read (permissions, vanished
	// files, filesystem loops). Kept off the wire so results from either
	// backend have the same shape.
	Skipped []string `json:"-"`
	Backend string   `json:"-"`
}

// Backend is one way of answering a search request.
type Backend interface {
	// Name identifies the backend in logs and in verify output.
	Name() string

	// Search returns every line under dir containing keyword. The directory
	// has already been validated and made absolute by Service.
	Search(ctx context.Context, dir, keyword string) (Result, error)
}

// Options are the limits shared by both backends. They must be identical
// for the two backends to agree on results.
type Options struct {
	MaxDepth      int // deepest entry level searched, 1 = root entries only (0 = unlimited)
	MaxMatches    int // stop after this many matches (0 = unlimited)
	MaxLineLength int // longest line scanned; files with longer lines are skipped
	SampleSize    int // bytes inspected by the classifier
}

// add appends m unless the match limit has been reached, in which case it
// marks the result truncated and reports false so the caller stops.
func (r *Result) add(m Match, limit int) bool {
	if limit > 0 && len(r.Matches) >= limit {
		r.Truncated = true
		return false
	}
	r.Matches = append(r.Matches, m)
	return true
}

// finish fills in derived fields. Matches is never nil so it encodes as [].
func (r *Result) finish(backend string) {
	if r.Matches == nil {
		r.Matches = []Match{}
	}
	r.Count = len(r.Matches)
	r.Backend = backend
}
