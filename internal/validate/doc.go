// Package validate checks caller-supplied input before it reaches the search
// engine or the file reader.
//
// Every tool call arrives from an untrusted client, so paths and keywords are
// validated at the service boundary rather than deep inside a backend. Each
// function returns nil on success or an error wrapping one of the sentinel
// kinds in errors.go.
//
// # Validation Functions
//
// Path cleans a filesystem path and rejects empty or NUL-containing input.
// Dir and File additionally stat the path and check its type.
// Keyword rejects keywords no line could sensibly match.
//
// # Error Handling
//
// Use errors.Is() against the sentinels to recover the kind:
//
//	if errors.Is(err, validate.ErrNotFound) {
//	    // path does not exist
//	}
package validate
