// lines.go holds the line scanner shared by both backends.
//
// The fallback uses it to find matches; the ripgrep backend uses it to
// post-filter files, so a file the fallback would skip (invalid UTF-8, a
// line longer than the limit) is skipped by ripgrep too.

package search

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"unicode/utf8"
)

// defaultMaxLineLength applies when Options.MaxLineLength is unset.
const defaultMaxLineLength = 10 * 1024 * 1024 // 10MB

// utf8BOM is dropped from the start of line 1, as ripgrep does when it
// sniffs the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// scanLines reads path line by line, calling fn (if non-nil) with each
// 1-indexed line number and line content. Line endings are stripped,
// including a trailing carriage return, and a UTF-8 byte order mark is
// removed from the first line. Returns errUndecodable as soon as a
// line is not valid UTF-8, or bufio.ErrTooLong for an over-long line.
func scanLines(path string, maxLine int, fn func(n int, line []byte)) error {
	if maxLine <= 0 {
		maxLine = defaultMaxLineLength
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// The scanner honours the larger of the buffer capacity and the limit,
	// so the initial buffer must not exceed the limit.
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, min(64*1024, maxLine)), maxLine)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if n == 1 {
			line = bytes.TrimPrefix(line, utf8BOM)
		}
		if !utf8.Valid(line) {
			return errUndecodable
		}
		if fn != nil {
			fn(n, line)
		}
	}
	return scanner.Err()
}

// matchFile returns every line of path containing keyword.
func matchFile(path, keyword string, maxLine int) ([]Match, error) {
	var matches []Match
	kw := []byte(keyword)
	err := scanLines(path, maxLine, func(n int, line []byte) {
		if bytes.Contains(line, kw) {
			matches = append(matches, Match{
				Path: path,
				Line: n,
				Text: strings.TrimSpace(string(line)),
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
