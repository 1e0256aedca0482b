// Package log provides centralised audit logging for seek operations.
// Logs are stored in ~/.seek/log/seek-log.db and record every CLI command
// and MCP tool invocation across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("search:search", "search").
//		Path(dir).
//		Backend(res.Backend).
//		Count(res.Count).
//		Detail("keyword", keyword).
//		Write(err)
//
//	log.Event("mcp:read_file", "read").
//		Path(p).
//		Detail("refused", res.Reason).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "search:read",
// "core:verify", "mcp:search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "search:search", "mcp:read_file"
	Action string // verb: search, read, verify, config
	Path   string // input: directory searched or file read

	// Output fields - populated after the operation completes
	Backend string // search backend that answered
	Count   int    // matches returned

	// Timing, unix milliseconds
	Start int64 // when Event() was called
	End   int64 // when Write() was called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "search:search", "search:read")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:search", "mcp:read_file")
//
// The action describes what was done: "search", "read", "verify", "config".
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Path sets the directory or file this operation targets.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Backend records which search backend produced the result.
//
// Example:
//
//	l.Backend(res.Backend) // "ripgrep" or "fallback"
func (b *Builder) Backend(name string) *Builder {
	b.entry.Backend = name
	return b
}

// Count records the number of matches returned.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// keywords, truncation, skipped entry counts, config keys, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("search:search", "search").
//		Detail("keyword", keyword).
//		Detail("skipped", len(res.Skipped))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	res, err := svc.Search(ctx, dir, keyword)
//	log.Event("search:search", "search").Path(dir).Count(res.Count).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, session: uuid.NewString()}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute working directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Session returns the identifier shared by all entries written by this
// process, or "" when the logger is closed.
func Session() string {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return ""
	}
	return global.session
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
