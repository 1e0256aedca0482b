package finder

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/validate"
)

// stubLookPath replaces the ripgrep lookup for the duration of the test.
func stubLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	orig := lookPath
	lookPath = fn
	t.Cleanup(func() { lookPath = orig })
}

func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\nworld hello\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte("hello\x00\x01"), 0644))
	return dir
}

func TestNewWithConfig_NoRipgrep(t *testing.T) {
	stubLookPath(t, func(string) (string, error) { return "", exec.ErrNotFound })

	f := NewWithConfig(&config.Config{}, Options{})
	assert.Empty(t, f.Ripgrep())
	assert.Equal(t, []string{"fallback"}, f.Backends())

	res, err := f.Search(context.Background(), tree(t), "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "fallback", res.Backend)
}

func TestNewWithConfig_Disabled(t *testing.T) {
	called := false
	stubLookPath(t, func(string) (string, error) {
		called = true
		return "/usr/bin/rg", nil
	})

	f := NewWithConfig(&config.Config{}, Options{DisableRipgrep: true})
	assert.False(t, called, "lookup skipped when disabled")
	assert.Equal(t, []string{"fallback"}, f.Backends())
}

func TestNewWithConfig_RipgrepResolvedOnce(t *testing.T) {
	var asked []string
	stubLookPath(t, func(name string) (string, error) {
		asked = append(asked, name)
		return "/opt/rg", nil
	})

	cfg := &config.Config{}
	require.NoError(t, cfg.Set("search.ripgrep", "my-rg"))

	f := NewWithConfig(cfg, Options{})
	assert.Equal(t, "/opt/rg", f.Ripgrep())
	assert.Equal(t, []string{"ripgrep", "fallback"}, f.Backends())

	NewWithConfig(cfg, Options{Ripgrep: "flag-rg"})
	assert.Equal(t, []string{"my-rg", "flag-rg"}, asked)
}

func TestSearch_StaleRipgrepFallsBack(t *testing.T) {
	// Resolved at startup but gone by the time of the search.
	stubLookPath(t, func(string) (string, error) {
		return filepath.Join(t.TempDir(), "rg-removed"), nil
	})

	f := NewWithConfig(&config.Config{}, Options{})
	res, err := f.Search(context.Background(), tree(t), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fallback", res.Backend)
	assert.Equal(t, 2, res.Count)
}

func TestSearch_RealRipgrep(t *testing.T) {
	if _, err := exec.LookPath("rg"); err != nil {
		t.Skip("ripgrep not installed")
	}

	f := NewWithConfig(&config.Config{}, Options{})
	res, err := f.Search(context.Background(), tree(t), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ripgrep", res.Backend)
	assert.Equal(t, 2, res.Count)
}

func TestReadFile(t *testing.T) {
	stubLookPath(t, func(string) (string, error) { return "", exec.ErrNotFound })
	dir := tree(t)
	f := NewWithConfig(&config.Config{}, Options{})

	res, err := f.ReadFile(context.Background(), filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld hello\n", res.Content)

	res, err = f.ReadFile(context.Background(), filepath.Join(dir, "b.bin"))
	require.NoError(t, err)
	assert.True(t, res.Refused)

	_, err = f.ReadFile(context.Background(), dir)
	assert.True(t, errors.Is(err, validate.ErrInvalidInput))
}

func TestConfigLimitsApplied(t *testing.T) {
	stubLookPath(t, func(string) (string, error) { return "", exec.ErrNotFound })
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("k\nk\nk\n"), 0644))

	cfg := &config.Config{}
	require.NoError(t, cfg.Set("limits.max_matches", "2"))
	require.NoError(t, cfg.Set("limits.max_content", "3"))
	require.NoError(t, cfg.Set("limits.max_line_length", "4096"))
	f := NewWithConfig(cfg, Options{})

	res, err := f.Search(context.Background(), dir, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.True(t, res.Truncated)

	_, err = f.ReadFile(context.Background(), filepath.Join(dir, "a.txt"))
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	assert.Equal(t, 4096, f.MaxLineLength())
}
