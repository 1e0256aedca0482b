package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Agree(t *testing.T) {
	if !hasRipgrep() {
		t.Skip("ripgrep not installed")
	}
	env := newTestEnv(t)
	env.fixture()
	env.write("deep/er/x.txt", "hello there\n")
	env.write(".hidden/h.txt", "hello hidden\n")

	out := env.run("verify", "hello", env.dir)
	env.equals(out, "ripgrep and fallback agree (5 matches)")
}

func TestVerify_JSON(t *testing.T) {
	if !hasRipgrep() {
		t.Skip("ripgrep not installed")
	}
	env := newTestEnv(t)
	env.fixture()

	out := env.run("-o", "json", "verify", "hello", env.dir)
	var got struct {
		Equal    bool `json:"equal"`
		Outcomes []struct {
			Backend string `json:"backend"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Equal)
	require.Len(t, got.Outcomes, 2)
	assert.Equal(t, "ripgrep", got.Outcomes[0].Backend)
	assert.Equal(t, "fallback", got.Outcomes[1].Backend)
}

func TestVerify_Mismatch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake ripgrep is a shell script")
	}
	env := newTestEnv(t)
	env.fixture()

	// A "ripgrep" that reports a line the in-process search never finds.
	stdout := filepath.Join(env.home, "rg.out")
	line := filepath.Join(env.dir, "a.txt") + "\x007:bogus hello\n"
	require.NoError(t, os.WriteFile(stdout, []byte(line), 0644))
	fake := filepath.Join(env.home, "rg")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\ncat '"+stdout+"'\nexit 0\n"), 0755))

	out, err := env.runErr("--rg", fake, "verify", "--raw", "hello", env.dir)
	assert.Error(t, err, "mismatch exits non-zero")
	env.contains(out, "--- ripgrep")
	env.contains(out, "+++ fallback")
	env.contains(out, "- "+filepath.Join(env.dir, "a.txt")+":7:bogus hello")
}

func TestVerify_SingleBackend(t *testing.T) {
	env := newTestEnv(t)
	env.fixture()

	out, err := env.runErr("--no-rg", "verify", "hello", env.dir)
	assert.Error(t, err)
	env.contains(out, "only one search backend")
}
