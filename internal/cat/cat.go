// Package cat reads single files for display, with line range support.
//
// Reader is the content retrieval used by read_file: it refuses binary and
// undecodable files and otherwise returns the whole file. Run layers the
// CLI and partial-read options on top. The StartLine/EndLine options let an
// LLM read just the relevant section of a large file: search output shows
// line numbers, so the workflow is search -> find line -> read -l 40:60.
package cat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/seek/internal/validate"
)

// minLineNumWidth is the minimum column width for line numbers.
// Ensures consistent formatting for typical files.
const minLineNumWidth = 6

// defaultMaxLineLength bounds a single line when ranging (10MB).
const defaultMaxLineLength = 10 * 1024 * 1024

// Source returns file content. Implemented by Reader and by service.Service.
type Source interface {
	ReadFile(ctx context.Context, path string) (Result, error)
}

// Options configures a Run.
type Options struct {
	LineNumbers bool // Show line numbers (-n flag)

	StartLine int // First line to show (1-indexed, 0 = start)
	EndLine   int // Last line to show (1-indexed, 0 = end)

	// MaxLineLength is the maximum line length for scanning (0 = default 10MB).
	// Needed for files with very long lines (minified JS, large JSON).
	MaxLineLength int
}

// Validate rejects negative and inverted ranges.
func (o Options) Validate() error {
	if o.StartLine < 0 || o.EndLine < 0 {
		return fmt.Errorf("%w: line numbers must be positive", validate.ErrInvalidInput)
	}
	if o.EndLine > 0 && o.StartLine > o.EndLine {
		return fmt.Errorf("%w: start line %d is after end line %d", validate.ErrInvalidInput, o.StartLine, o.EndLine)
	}
	return nil
}

// Run reads a file and writes the selected content to w. A refused file
// writes nothing and is returned with a nil error; callers that want an
// error use Result.Err.
func Run(ctx context.Context, w io.Writer, src Source, path string, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	result, err := src.ReadFile(ctx, path)
	if err != nil || result.Refused {
		return result, err
	}

	if err := Render(w, result.Content, opts); err != nil {
		return result, err
	}
	return result, nil
}

// Render writes content to w, restricted to the options' line range and
// optionally prefixed with line numbers.
func Render(w io.Writer, content string, opts Options) error {
	// Fast path: no line range and no line numbers - output content as-is
	if opts.StartLine == 0 && opts.EndLine == 0 && !opts.LineNumbers {
		_, err := io.WriteString(w, content)
		return err
	}

	totalLines := strings.Count(content, "\n") + 1
	hasTrailingNewline := strings.HasSuffix(content, "\n")
	if hasTrailingNewline {
		totalLines-- // trailing newline doesn't add a line
	}

	start := 1
	end := totalLines
	if opts.StartLine > 0 {
		start = opts.StartLine
	}
	if opts.EndLine > 0 && opts.EndLine < end {
		end = opts.EndLine
	}

	lineNumWidth := max(len(strconv.Itoa(end)), minLineNumWidth)

	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = defaultMaxLineLength
	}
	// Scanner avoids allocating a slice of every line; lines before the range
	// are skipped without copies.
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, min(64*1024, maxLine)), maxLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if lineNum < start {
			continue
		}
		if lineNum > end {
			break
		}

		line := scanner.Text()
		if opts.LineNumbers {
			fmt.Fprintf(w, "%*d\t%s", lineNumWidth, lineNum, line)
		} else {
			fmt.Fprint(w, line)
		}

		// Newline between lines, and at the end if the original had one
		if lineNum < end || hasTrailingNewline {
			fmt.Fprintln(w)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	return nil
}
