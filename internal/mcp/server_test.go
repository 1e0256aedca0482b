package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/finder"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/validate"
)

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	return &handlers{svc: finder.NewWithConfig(&config.Config{}, finder.Options{DisableRipgrep: true})}
}

func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":      "hello\n  world hello  \n",
		"b.bin":      "hello\x00\x01",
		"empty.txt":  "",
		"lines.txt":  "one\ntwo\nthree\nfour\n",
		"latin1.txt": "caf\xe9 hello\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

// text returns the single text content of a tool result.
func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestTools_Table(t *testing.T) {
	h := newHandlers(t)
	tools := h.tools()

	require.Len(t, tools, len(toolNames))
	for _, name := range toolNames {
		tl, ok := tools[name]
		require.True(t, ok, name)
		assert.Equal(t, string(name), tl.def.Name)
		assert.NotNil(t, tl.handle)
	}
	assert.ElementsMatch(t, []string{"directory", "keyword"}, tools[ToolSearch].def.InputSchema.Required)
	assert.ElementsMatch(t, []string{"file_path"}, tools[ToolReadFile].def.InputSchema.Required)
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(newHandlers(t).svc))
}

func TestSearch(t *testing.T) {
	h := newHandlers(t)
	dir := tree(t)

	res, err := h.search(context.Background(), call(map[string]any{"directory": dir, "keyword": "hello"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got struct {
		Matches []struct {
			Path string `json:"file_path"`
			Line int    `json:"line_number"`
			Text string `json:"line_text"`
		} `json:"matches"`
		Count     int  `json:"count"`
		Truncated bool `json:"truncated"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))

	// b.bin is binary and latin1.txt is not UTF-8; both are excluded.
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, filepath.Join(dir, "a.txt"), got.Matches[0].Path)
	assert.Equal(t, 1, got.Matches[0].Line)
	assert.Equal(t, "hello", got.Matches[0].Text)
	assert.Equal(t, 2, got.Matches[1].Line)
	assert.Equal(t, "world hello", got.Matches[1].Text)
	assert.False(t, got.Truncated)
}

func TestSearch_NoMatches(t *testing.T) {
	h := newHandlers(t)

	res, err := h.search(context.Background(), call(map[string]any{"directory": tree(t), "keyword": "absent"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := text(t, res)
	assert.Contains(t, out, `"matches": []`)
	assert.Contains(t, out, `"count": 0`)
	assert.NotContains(t, out, "backend")
}

func TestSearch_Errors(t *testing.T) {
	dir := tree(t)
	tests := []struct {
		name string
		args map[string]any
		kind string
	}{
		{"missing keyword", map[string]any{"directory": dir}, "invalid_input"},
		{"missing directory", map[string]any{"keyword": "x"}, "invalid_input"},
		{"empty keyword", map[string]any{"directory": dir, "keyword": ""}, "invalid_input"},
		{"whitespace keyword", map[string]any{"directory": dir, "keyword": "  "}, "invalid_input"},
		{"keyword not a string", map[string]any{"directory": dir, "keyword": 5}, "invalid_input"},
		{"directory missing", map[string]any{"directory": filepath.Join(dir, "nope"), "keyword": "x"}, "not_found"},
		{"directory is a file", map[string]any{"directory": filepath.Join(dir, "a.txt"), "keyword": "x"}, "invalid_input"},
	}

	h := newHandlers(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.search(context.Background(), call(tt.args))
			require.NoError(t, err, "errors are tool results, not Go errors")
			assert.True(t, res.IsError)
			assert.True(t, strings.HasPrefix(text(t, res), tt.kind+": "), text(t, res))
		})
	}
}

func TestSearch_Canceled(t *testing.T) {
	h := newHandlers(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := h.search(ctx, call(map[string]any{"directory": tree(t), "keyword": "hello"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(text(t, res), "canceled: "), text(t, res))
}

func TestReadFile(t *testing.T) {
	h := newHandlers(t)
	dir := tree(t)
	path := filepath.Join(dir, "a.txt")

	res, err := h.readFile(context.Background(), call(map[string]any{"file_path": path}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, map[string]any{
		"file_path": path,
		"content":   "hello\n  world hello  \n",
	}, got)
}

func TestReadFile_Empty(t *testing.T) {
	h := newHandlers(t)

	res, err := h.readFile(context.Background(), call(map[string]any{"file_path": filepath.Join(tree(t), "empty.txt")}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, "", got["content"])
}

func TestReadFile_LineRange(t *testing.T) {
	path := filepath.Join(tree(t), "lines.txt")
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"numbers", map[string]any{"start_line": 2, "end_line": 3}, "two\nthree\n"},
		{"floats", map[string]any{"start_line": 2.0, "end_line": 3.0}, "two\nthree\n"},
		{"strings", map[string]any{"start_line": "3", "end_line": "4"}, "three\nfour\n"},
		{"start only", map[string]any{"start_line": 4}, "four\n"},
		{"end only", map[string]any{"end_line": 1}, "one\n"},
		{"null", map[string]any{"start_line": nil}, "one\ntwo\nthree\nfour\n"},
	}

	h := newHandlers(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args["file_path"] = path
			res, err := h.readFile(context.Background(), call(tt.args))
			require.NoError(t, err)
			require.False(t, res.IsError, text(t, res))

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
			assert.Equal(t, tt.want, got["content"])
		})
	}
}

func TestReadFile_Refused(t *testing.T) {
	dir := tree(t)
	tests := []struct {
		file   string
		reason string
	}{
		{"b.bin", cat.ReasonBinary},
		{"latin1.txt", cat.ReasonUndecodable},
	}

	h := newHandlers(t)
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			res, err := h.readFile(context.Background(), call(map[string]any{"file_path": path}))
			require.NoError(t, err)
			assert.False(t, res.IsError, "refusal is a successful call")

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
			assert.Equal(t, map[string]any{
				"file_path": path,
				"refused":   true,
				"reason":    tt.reason,
			}, got)
		})
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := tree(t)
	path := filepath.Join(dir, "lines.txt")
	tests := []struct {
		name string
		args map[string]any
		kind string
	}{
		{"missing path", map[string]any{}, "invalid_input"},
		{"not found", map[string]any{"file_path": filepath.Join(dir, "nope.txt")}, "not_found"},
		{"directory", map[string]any{"file_path": dir}, "invalid_input"},
		{"bad start", map[string]any{"file_path": path, "start_line": "abc"}, "invalid_input"},
		{"negative", map[string]any{"file_path": path, "start_line": -1}, "invalid_input"},
		{"inverted", map[string]any{"file_path": path, "start_line": 3, "end_line": 2}, "invalid_input"},
	}

	h := newHandlers(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.readFile(context.Background(), call(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.True(t, strings.HasPrefix(text(t, res), tt.kind+": "), text(t, res))
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want errorKind
	}{
		{fmt.Errorf("%w: x", validate.ErrInvalidInput), kindInvalidInput},
		{fmt.Errorf("%w: x", search.ErrUnknownBackend), kindInvalidInput},
		{fmt.Errorf("%w: x", cat.ErrBinary), kindInvalidInput},
		{fmt.Errorf("%w: x", validate.ErrNotFound), kindNotFound},
		{fmt.Errorf("%w: x", validate.ErrPermissionDenied), kindPermissionDenied},
		{fmt.Errorf("%w: x", cat.ErrDecodeFailure), kindDecodeFailure},
		{fmt.Errorf("%w: %w", search.ErrOperationFailure, context.DeadlineExceeded), kindOperationFailure},
		{context.Canceled, kindCanceled},
		{context.DeadlineExceeded, kindCanceled},
		{errors.New("disk on fire"), kindOperationFailure},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, kindOf(tt.err))
		})
	}
}

func TestParseFileURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr error
	}{
		{"seek://files/notes.txt", "notes.txt", nil},
		{"seek://files//tmp/a b.txt", "/tmp/a b.txt", nil},
		{"seek://files/dir%2Fa%20b.txt", "dir/a b.txt", nil},
		{"seek://files/", "", ErrEmptyPath},
		{"other://files/x", "", ErrInvalidURI},
		{"seek://files/%zz", "", ErrInvalidURI},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseFileURI(tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, validate.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func resourceReq(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{Params: mcp.ReadResourceParams{URI: uri}}
}

func TestReadFileResource(t *testing.T) {
	h := newHandlers(t)
	dir := tree(t)

	uri := "seek://files/" + filepath.Join(dir, "lines.txt")
	contents, err := h.readFileResource(context.Background(), resourceReq(uri))
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, uri, tc.URI)
	assert.Equal(t, "one\ntwo\nthree\nfour\n", tc.Text)

	_, err = h.readFileResource(context.Background(), resourceReq("seek://files/"+filepath.Join(dir, "b.bin")))
	assert.ErrorIs(t, err, cat.ErrBinary)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid_input: "))

	_, err = h.readFileResource(context.Background(), resourceReq("seek://files/"+filepath.Join(dir, "latin1.txt")))
	assert.ErrorIs(t, err, cat.ErrDecodeFailure)
	assert.True(t, strings.HasPrefix(err.Error(), "decode_failure: "))
}

func TestReadGuideResource(t *testing.T) {
	h := newHandlers(t)

	contents, err := h.readGuideResource(context.Background(), resourceReq(guideURI))
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", tc.MIMEType)
	assert.True(t, strings.HasPrefix(tc.Text, "# seek"))
}
