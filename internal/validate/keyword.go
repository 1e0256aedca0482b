// keyword.go implements search keyword validation.
//
// Keywords are matched as literal substrings of single lines. A keyword that
// could never match (a line break) or that would match everything (empty)
// is rejected up front so neither backend has to special-case it.

package validate

import (
	"fmt"
	"strings"
)

// Keyword validates a search keyword.
//
// Validation rules:
//   - Empty or whitespace-only keywords rejected (would return every line)
//   - Line breaks rejected (matching is per line)
//   - Null bytes rejected (cannot be passed as a process argument)
func Keyword(k string) error {
	if strings.TrimSpace(k) == "" {
		return fmt.Errorf("%w: empty keyword", ErrInvalidInput)
	}
	if strings.ContainsAny(k, "\n\r") {
		return fmt.Errorf("%w: keyword must not contain line breaks", ErrInvalidInput)
	}
	if strings.ContainsRune(k, 0) {
		return fmt.Errorf("%w: null byte in keyword", ErrInvalidInput)
	}
	return nil
}
