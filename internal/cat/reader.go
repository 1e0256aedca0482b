package cat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/jpl-au/seek/internal/classify"
	"github.com/jpl-au/seek/internal/validate"
)

// DefaultMaxContent is the largest file ReadFile returns when no limit is
// configured.
const DefaultMaxContent = 100 * 1024 * 1024 // 100MB

// Refusal reasons.
const (
	ReasonBinary      = "binary"
	ReasonUndecodable = "undecodable"
)

var (
	// ErrBinary is reported for a file the classifier considers binary.
	ErrBinary = errors.New("file is binary")

	// ErrDecodeFailure is reported for a text file that is not valid UTF-8.
	ErrDecodeFailure = errors.New("file is not valid UTF-8")
)

// Result is the outcome of reading one file. Either Content is set, or
// Refused is true and Reason says why.
type Result struct {
	Path    string
	Content string
	Refused bool
	Reason  string
}

// MarshalJSON encodes {file_path, content} for readable files and
// {file_path, refused, reason} for refused ones. An empty file still
// carries "content": "".
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Refused {
		return json.Marshal(struct {
			Path    string `json:"file_path"`
			Refused bool   `json:"refused"`
			Reason  string `json:"reason"`
		}{r.Path, true, r.Reason})
	}
	return json.Marshal(struct {
		Path    string `json:"file_path"`
		Content string `json:"content"`
	}{r.Path, r.Content})
}

// Err returns the error equivalent of a refusal, or nil.
func (r Result) Err() error {
	if !r.Refused {
		return nil
	}
	switch r.Reason {
	case ReasonBinary:
		return fmt.Errorf("%w: %s", ErrBinary, r.Path)
	default:
		return fmt.Errorf("%w: %s", ErrDecodeFailure, r.Path)
	}
}

// Reader returns the content of text files and refuses binary ones, using
// the same classifier as search so the two never disagree.
type Reader struct {
	sampleSize int
	maxContent int64
}

// NewReader creates a reader. Zero values select the defaults.
func NewReader(sampleSize int, maxContent int64) *Reader {
	if sampleSize <= 0 {
		sampleSize = classify.DefaultSampleSize
	}
	if maxContent <= 0 {
		maxContent = DefaultMaxContent
	}
	return &Reader{sampleSize: sampleSize, maxContent: maxContent}
}

// ReadFile validates path and returns the file's full content. Binary and
// undecodable files produce a refused Result, not an error.
func (r *Reader) ReadFile(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	abs, info, err := validate.File(path)
	if err != nil {
		return Result{}, err
	}
	if info.Size() > r.maxContent {
		return Result{}, fmt.Errorf("%w: %s is %d bytes, limit is %d",
			validate.ErrInvalidInput, path, info.Size(), r.maxContent)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Result{}, fmt.Errorf("%w: %s", validate.ErrPermissionDenied, path)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s does not exist", validate.ErrNotFound, path)
		}
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res := Result{Path: abs}
	switch {
	case classify.Bytes(data[:min(len(data), r.sampleSize)]) == classify.Binary:
		res.Refused, res.Reason = true, ReasonBinary
	case !utf8.Valid(data):
		res.Refused, res.Reason = true, ReasonUndecodable
	default:
		res.Content = string(data)
	}
	return res, nil
}
