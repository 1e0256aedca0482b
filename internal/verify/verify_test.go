package verify

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/search"
)

// stubSource answers SearchWith from a table of canned results.
type stubSource struct {
	*cat.Reader
	results map[string]search.Result
	errs    map[string]error
}

func (s *stubSource) Search(ctx context.Context, dir, keyword string) (search.Result, error) {
	return s.SearchWith(ctx, s.Backends()[0], dir, keyword)
}

func (s *stubSource) SearchWith(_ context.Context, backend, _, _ string) (search.Result, error) {
	if err := s.errs[backend]; err != nil {
		return search.Result{}, err
	}
	return s.results[backend], nil
}

func (s *stubSource) Backends() []string {
	var names []string
	for _, n := range []string{"ripgrep", "fallback"} {
		if _, ok := s.results[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

func result(matches ...search.Match) search.Result {
	return search.Result{Matches: matches, Count: len(matches)}
}

func TestRun_Equal(t *testing.T) {
	m := search.Match{Path: "/a.txt", Line: 1, Text: "hello"}
	src := &stubSource{results: map[string]search.Result{
		"ripgrep":  result(m),
		"fallback": result(m),
	}}

	rep, err := Run(context.Background(), src, "/", "hello")
	require.NoError(t, err)
	assert.True(t, rep.Equal)
	require.Len(t, rep.Outcomes, 2)
	assert.Equal(t, "ripgrep", rep.Outcomes[0].Backend)
	assert.Equal(t, "/a.txt:1:hello\n", rep.Outcomes[0].Output)
}

func TestRun_Mismatch(t *testing.T) {
	src := &stubSource{results: map[string]search.Result{
		"ripgrep":  result(search.Match{Path: "/a.txt", Line: 1, Text: "hello"}, search.Match{Path: "/b.bin", Line: 1, Text: "hello"}),
		"fallback": result(search.Match{Path: "/a.txt", Line: 1, Text: "hello"}),
	}}

	rep, err := Run(context.Background(), src, "/", "hello")
	require.NoError(t, err)
	assert.False(t, rep.Equal)
	assert.Contains(t, rep.Diff.Diff, "- /b.bin:1:hello")
}

func TestRun_SingleBackend(t *testing.T) {
	src := &stubSource{results: map[string]search.Result{"fallback": result()}}

	_, err := Run(context.Background(), src, "/", "x")
	assert.ErrorIs(t, err, ErrSingleBackend)
}

func TestRun_BackendError(t *testing.T) {
	src := &stubSource{
		results: map[string]search.Result{"ripgrep": result(), "fallback": result()},
		errs:    map[string]error{"ripgrep": search.ErrOperationFailure},
	}

	_, err := Run(context.Background(), src, "/", "x")
	assert.True(t, errors.Is(err, search.ErrOperationFailure))
	assert.Contains(t, err.Error(), "ripgrep")
}

// realSource combines a real search service and reader.
type realSource struct {
	*search.Service
	*cat.Reader
}

func TestRun_RealBackends(t *testing.T) {
	bin, err := exec.LookPath("rg")
	if err != nil {
		t.Skip("ripgrep not installed")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\nworld hello\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte("hello\x00"), 0644))

	opts := search.Options{}
	svc := search.NewService(search.NewRipgrep(bin, 0, search.DefaultExitCodes, opts), search.NewFallback(opts), nil)

	rep, err := Run(context.Background(), realSource{svc, cat.NewReader(0, 0)}, dir, "hello")
	require.NoError(t, err)
	assert.True(t, rep.Equal, rep.Diff.Format(false))
	assert.Equal(t, 2, rep.Outcomes[1].Result.Count)
}
