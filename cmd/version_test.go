package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "Go Version:")
	env.contains(out, "Ripgrep:")
}

func TestVersion_NoRipgrep(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("--no-rg", "version")
	env.contains(out, "Ripgrep:      not found (in-process search)")
}

func TestVersion_EnvNoRipgrep(t *testing.T) {
	env := newTestEnv(t)
	env.setenv("SEEK_NO_RG", "1")

	out := env.run("-o", "json", "version")
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "", got["ripgrep"])
	assert.NotEmpty(t, got["go_version"])
}

func TestVersion_RipgrepFlag(t *testing.T) {
	env := newTestEnv(t)

	// An executable that is not on PATH is still used when named explicitly.
	out := env.run("--rg", env.binary, "-o", "json", "version")
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, env.binary, got["ripgrep"])
}
