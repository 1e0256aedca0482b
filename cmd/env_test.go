// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> finder -> search backend -> filesystem.
// Each test builds the real binary once and runs it in a temporary working
// directory with HOME pointed at a temporary directory, so neither the
// user's config nor their audit log is touched.
//
// Backend-specific behaviour is unit tested in internal/search. Tests here
// run with whatever ripgrep is on PATH and again with --no-rg, and expect the
// same output either way.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the seek binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "seek-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "seek"
		if os.PathSeparator == '\\' {
			binaryName = "seek.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string   // working directory
	home   string   // isolated HOME
	binary string
	extra  []string // additional environment, KEY=VALUE
}

// newTestEnv creates a temporary working directory and HOME.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// write creates a file under the working directory.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, filepath.FromSlash(name))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// fixture writes the tree most tests search: a text file with two matches,
// a binary file that also contains the keyword, and a nested markdown file.
func (e *testEnv) fixture() {
	e.t.Helper()
	e.write("a.txt", "hello\nworld hello\n")
	e.write("b.bin", "hello\x00\x01\x02")
	e.write("docs/notes.md", "# Notes\n\nsay hello\n")
}

// setenv adds a variable to the environment of later runs.
func (e *testEnv) setenv(key, value string) {
	e.extra = append(e.extra, key+"="+value)
}

// run executes seek with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("seek %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes seek and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := e.command(args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return stdout.String() + stderr.String(), err
	}
	return stdout.String(), nil
}

// command prepares seek with the isolated environment.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"SEEK_RG=",
		"SEEK_NO_RG=",
	)
	cmd.Env = append(cmd.Env, e.extra...)
	return cmd
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// hasRipgrep reports whether ripgrep is on PATH.
func hasRipgrep() bool {
	_, err := exec.LookPath("rg")
	return err == nil
}
