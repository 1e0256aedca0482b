// ripgrep.go implements the external search backend.
//
// Delegates to ripgrep (rg) for speed on large trees. The invocation is
// pinned so its output matches the fallback: literal and case-sensitive,
// hidden and ignored files included, symlinks followed, sorted by path.
//
// Output format: with --null, each match line is
//
//	<path>NUL<line number>:<line text>
//
// The NUL after the path means paths containing ':' parse unambiguously.
//
// Binary files: ripgrep's own detection differs from the classifier (it
// looks for NUL anywhere and may stop mid-file), so it is disabled with
// --text and every file that produced matches is post-filtered through the
// classifier and the shared line scanner instead.
//
// Exit status: ripgrep exits 0 when something matched, 1 when nothing did,
// and 2 on error. The first two are configurable because the convention has
// to be confirmed against the installed version ("seek verify" does this).
// Status 2 is also returned when only individual entries failed (permission
// denied, filesystem loop); those runs are accepted and the entries are
// recorded as skipped, matching how the fallback treats them.

package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jpl-au/seek/internal/classify"
)

// DefaultTimeout bounds a single ripgrep run when none is configured.
const DefaultTimeout = 30 * time.Second

// waitDelay bounds how long Wait keeps draining output pipes after the
// process has been killed.
const waitDelay = 2 * time.Second

// ExitCodes is ripgrep's exit-status convention.
type ExitCodes struct {
	Match   int // at least one line matched
	NoMatch int // ran successfully, nothing matched
}

// DefaultExitCodes is the convention documented by ripgrep.
var DefaultExitCodes = ExitCodes{Match: 0, NoMatch: 1}

// Ripgrep searches by running the rg executable.
type Ripgrep struct {
	path    string // resolved executable, "" when not installed
	timeout time.Duration
	codes   ExitCodes
	opts    Options
}

var _ Backend = (*Ripgrep)(nil)

// NewRipgrep creates the external backend. path is the executable resolved
// at startup; an empty path makes every Search return ErrUnavailable.
func NewRipgrep(path string, timeout time.Duration, codes ExitCodes, opts Options) *Ripgrep {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Ripgrep{path: path, timeout: timeout, codes: codes, opts: opts}
}

// Name returns "ripgrep".
func (r *Ripgrep) Name() string { return "ripgrep" }

// Path returns the executable this backend runs.
func (r *Ripgrep) Path() string { return r.path }

// args builds the ripgrep command line. The keyword follows "--" so a
// keyword starting with '-' is never taken for a flag.
func (r *Ripgrep) args(dir, keyword string) []string {
	args := []string{
		"--fixed-strings",
		"--case-sensitive",
		"--line-number",
		"--with-filename",
		"--no-heading",
		"--null",
		"--color", "never",
		"--no-config",
		"--hidden",
		"--no-ignore",
		"--follow",
		"--text",
		"--sort", "path",
	}
	if r.opts.MaxDepth > 0 {
		args = append(args, "--max-depth", strconv.Itoa(r.opts.MaxDepth))
	}
	return append(args, "--", keyword, dir)
}

// Search runs ripgrep and parses its output as it arrives. Returns
// ErrUnavailable when the process cannot be started and ErrOperationFailure
// when it fails or times out. Cancelling ctx kills the process, and so does
// reaching the match limit, in which case the result is marked truncated.
func (r *Ripgrep) Search(ctx context.Context, dir, keyword string) (Result, error) {
	if r.path == "" {
		return Result{}, fmt.Errorf("%w: ripgrep not installed", ErrUnavailable)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.path, r.args(dir, keyword)...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOperationFailure, err)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: starting %s: %w", ErrUnavailable, r.path, err)
	}
	result, collectErr := r.collect(stdout)
	if collectErr != nil || result.Truncated {
		// Nothing more is needed from the process.
		cancel()
	}
	waitErr := cmd.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, stopped(err)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{}, fmt.Errorf("%w: ripgrep timed out after %s: %w", ErrOperationFailure, r.timeout, context.DeadlineExceeded)
	}
	if collectErr != nil {
		return Result{}, collectErr
	}
	if result.Truncated {
		return result, nil
	}

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Result{}, fmt.Errorf("%w: %w", ErrOperationFailure, waitErr)
		}
		code = exitErr.ExitCode()
	}

	switch code {
	case r.codes.Match, r.codes.NoMatch:
	default:
		skipped, ok := entryErrors(stderr.String())
		if !ok {
			return Result{}, fmt.Errorf("%w: ripgrep exited with status %d: %s",
				ErrOperationFailure, code, strings.TrimSpace(stderr.String()))
		}
		result.Skipped = append(skipped, result.Skipped...)
	}
	return result, nil
}

// collect parses ripgrep output line by line and applies the classifier
// post-filter. It stops reading once the match limit is passed.
func (r *Ripgrep) collect(out io.Reader) (Result, error) {
	var result Result
	eligible := make(map[string]bool)
	br := bufio.NewReader(out)

	for {
		line, readErr := br.ReadBytes('\n')
		line = bytes.TrimSuffix(line, []byte{'\n'})
		if len(line) > 0 {
			m, err := parseLine(line)
			if err != nil {
				return Result{}, err
			}

			ok, seen := eligible[m.Path]
			if !seen {
				ok = r.searchable(m.Path, &result)
				eligible[m.Path] = ok
			}
			if ok && !result.add(m, r.opts.MaxMatches) {
				break
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return Result{}, fmt.Errorf("%w: reading ripgrep output: %w", ErrOperationFailure, readErr)
		}
	}

	result.finish(r.Name())
	return result, nil
}

// searchable applies the same per-file rules as the fallback: text by the
// classifier, valid UTF-8, and no line over the length limit.
func (r *Ripgrep) searchable(path string, result *Result) bool {
	kind, err := classify.File(path, r.opts.SampleSize)
	if err != nil {
		result.Skipped = append(result.Skipped, path)
		return false
	}
	if kind == classify.Binary {
		return false
	}
	err = scanLines(path, r.opts.MaxLineLength, nil)
	if errors.Is(err, errUndecodable) {
		return false
	}
	if err != nil {
		result.Skipped = append(result.Skipped, path)
		return false
	}
	return true
}

// parseLine parses one "<path>NUL<line>:<text>" output line.
func parseLine(line []byte) (Match, error) {
	i := bytes.IndexByte(line, 0)
	if i <= 0 {
		return Match{}, fmt.Errorf("%w: unexpected ripgrep output %q", ErrOperationFailure, line)
	}
	path, rest := line[:i], line[i+1:]

	j := bytes.IndexByte(rest, ':')
	if j <= 0 {
		return Match{}, fmt.Errorf("%w: missing line number in ripgrep output %q", ErrOperationFailure, line)
	}
	n, err := strconv.Atoi(string(rest[:j]))
	if err != nil || n < 1 {
		return Match{}, fmt.Errorf("%w: bad line number in ripgrep output %q", ErrOperationFailure, line)
	}

	return Match{
		Path: filepath.Clean(string(path)),
		Line: n,
		Text: strings.TrimSpace(string(rest[j+1:])),
	}, nil
}

// entryErrors reports whether every stderr line describes a failure on a
// single entry rather than on the run as a whole, returning the affected
// paths. Per-entry lines look like:
//
//	rg: /some/path: Permission denied (os error 13)
//	rg: File system loop found: /a/b points to an ancestor /a
func entryErrors(stderr string) ([]string, bool) {
	var paths []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg, ok := strings.CutPrefix(line, "rg: ")
		if !ok {
			return nil, false
		}
		switch {
		case strings.HasPrefix(msg, "File system loop found"):
			paths = append(paths, msg)
		case strings.Contains(msg, "(os error "):
			i := strings.LastIndex(msg, ": ")
			if i <= 0 {
				return nil, false
			}
			paths = append(paths, msg[:i])
		default:
			return nil, false
		}
	}
	// A failure status with nothing on stderr is not a per-entry problem.
	if len(paths) == 0 {
		return nil, false
	}
	return paths, true
}
