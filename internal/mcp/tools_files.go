// tools_files.go implements the search and read_file tools.
//
// Both handlers follow the same shape: extract typed arguments, call the
// service, write an audit entry, and return either JSON or a kind-prefixed
// error result.
//
// Design: A refused read (binary or undecodable file) is a successful tool
// call whose JSON says refused, not an error result. The client asked a
// well-formed question about an existing file and the answer is "this file
// has no text content".

package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/log"
)

// searchArgs is the typed form of a search call.
type searchArgs struct {
	Directory string
	Keyword   string
}

// readArgs is the typed form of a read_file call.
type readArgs struct {
	FilePath  string
	StartLine int
	EndLine   int
}

func parseSearchArgs(req mcp.CallToolRequest) (searchArgs, error) {
	dir, err := requireString(req, "directory")
	if err != nil {
		return searchArgs{}, err
	}
	keyword, err := requireString(req, "keyword")
	if err != nil {
		return searchArgs{}, err
	}
	return searchArgs{Directory: dir, Keyword: keyword}, nil
}

func parseReadArgs(req mcp.CallToolRequest) (readArgs, error) {
	path, err := requireString(req, "file_path")
	if err != nil {
		return readArgs{}, err
	}
	start, err := getInt(req, "start_line", 0)
	if err != nil {
		return readArgs{}, err
	}
	end, err := getInt(req, "end_line", 0)
	if err != nil {
		return readArgs{}, err
	}
	return readArgs{FilePath: path, StartLine: start, EndLine: end}, nil
}

// search handles search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseSearchArgs(req)
	if err != nil {
		return toolError(err), nil
	}

	res, err := h.svc.Search(ctx, args.Directory, args.Keyword)

	log.Event("mcp:search", "search").
		Path(args.Directory).
		Backend(res.Backend).
		Count(res.Count).
		Detail("keyword", args.Keyword).
		Detail("truncated", res.Truncated).
		Detail("skipped", len(res.Skipped)).
		Write(err)

	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(res)
}

// readFile handles read_file tool calls.
func (h *handlers) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseReadArgs(req)
	if err != nil {
		return toolError(err), nil
	}

	opts := cat.Options{
		StartLine:     args.StartLine,
		EndLine:       args.EndLine,
		MaxLineLength: h.svc.MaxLineLength(),
	}

	var buf bytes.Buffer
	res, err := cat.Run(ctx, &buf, h.svc, args.FilePath, opts)

	b := log.Event("mcp:read_file", "read").Path(args.FilePath)
	if res.Refused {
		b.Detail("refused", res.Reason)
	}
	if args.StartLine > 0 || args.EndLine > 0 {
		b.Detail("start_line", args.StartLine).Detail("end_line", args.EndLine)
	}
	b.Write(err)

	if err != nil {
		return toolError(err), nil
	}
	if !res.Refused {
		res.Content = buf.String()
	}
	return jsonResult(res)
}
