// Package grep renders keyword search results in grep's familiar text forms.
//
// The search itself happens in the search package; this package turns a
// result into path:line:text lines, or paths only (-l), per-file counts
// (-c), or matches with surrounding context (-C). Context output re-reads
// each matching file through the same reader read_file uses, so a file
// that changed between search and render is reported rather than
// misprinted.
package grep

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/search"
)

// Source runs searches and reads files. Implemented by service.Service.
type Source interface {
	Search(ctx context.Context, dir, keyword string) (search.Result, error)
	ReadFile(ctx context.Context, path string) (cat.Result, error)
}

// Options configures a grep operation.
type Options struct {
	PathsOnly bool // Only output paths (-l flag)

	// CountOnly outputs just the match count per file. Enables LLMs to
	// quickly assess scope ("how many TODOs?") before deciding whether to
	// dive deeper.
	CountOnly bool // Only show count of matches (-c flag)

	// Context shows N lines around each match. LLMs need surrounding context
	// to understand matches without reading entire files.
	Context int // Lines of context around matches (-C flag)
}

// fileHits groups matches by file, preserving result order.
type fileHits struct {
	path  string
	lines []search.Match
}

// Run searches dir for keyword and writes the formatted result to w.
func Run(ctx context.Context, w io.Writer, src Source, dir, keyword string, opts Options) (search.Result, error) {
	result, err := src.Search(ctx, dir, keyword)
	if err != nil {
		return result, err
	}
	if err := Write(ctx, w, src, result, opts); err != nil {
		return result, err
	}
	return result, nil
}

// Write formats an existing result.
func Write(ctx context.Context, w io.Writer, src Source, result search.Result, opts Options) error {
	hits := group(result.Matches)

	switch {
	case opts.PathsOnly:
		for _, h := range hits {
			fmt.Fprintln(w, h.path)
		}
	case opts.CountOnly:
		for _, h := range hits {
			fmt.Fprintf(w, "%s:%d\n", h.path, len(h.lines))
		}
	case opts.Context > 0:
		for i, h := range hits {
			if i > 0 {
				fmt.Fprintln(w, "--")
			}
			if err := writeContext(ctx, w, src, h, opts.Context); err != nil {
				return err
			}
		}
	default:
		for _, m := range result.Matches {
			fmt.Fprintf(w, "%s:%d:%s\n", m.Path, m.Line, m.Text)
		}
	}

	if result.Truncated {
		fmt.Fprintf(w, "(stopped after %d matches)\n", result.Count)
	}
	return nil
}

func group(matches []search.Match) []fileHits {
	var hits []fileHits
	for _, m := range matches {
		if n := len(hits); n > 0 && hits[n-1].path == m.Path {
			hits[n-1].lines = append(hits[n-1].lines, m)
			continue
		}
		hits = append(hits, fileHits{path: m.Path, lines: []search.Match{m}})
	}
	return hits
}

// writeContext prints one file's matches with surrounding lines.
//
// Context output follows grep convention:
//   - ":" separates path:line:content for matching lines
//   - "-" separates path-line-content for context lines
//   - "--" separates non-contiguous match groups
//
// This allows LLMs to distinguish matches from context at a glance.
func writeContext(ctx context.Context, w io.Writer, src Source, h fileHits, n int) error {
	res, err := src.ReadFile(ctx, h.path)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(res.Content, "\n"), "\n")
	matched := make(map[int]bool, len(h.lines))
	for _, m := range h.lines {
		matched[m.Line] = true
	}

	last := 0 // last printed 1-indexed line
	for _, m := range h.lines {
		start := max(m.Line-n, last+1, 1)
		end := min(m.Line+n, len(lines))
		if last > 0 && start > last+1 {
			fmt.Fprintln(w, "--")
		}
		for ln := start; ln <= end; ln++ {
			sep := "-" // context line
			if matched[ln] {
				sep = ":" // matching line
			}
			fmt.Fprintf(w, "%s%s%d%s%s\n", h.path, sep, ln, sep, strings.TrimSuffix(lines[ln-1], "\r"))
		}
		last = max(last, end)
	}
	return nil
}
