// Package classify decides whether a file holds text or binary data.
//
// Both search backends and the file reader consult the same heuristic so a
// file excluded from search is also refused by read_file, and vice versa.
// The decision is made from a bounded leading sample rather than a format
// parser: images, archives and executables reliably trip the NUL check,
// while ordinary source and prose never do.
package classify

import (
	"errors"
	"io"
	"os"
)

// DefaultSampleSize is how many leading bytes are inspected when the
// caller does not configure a sample size.
const DefaultSampleSize = 8192

// maxControlPercent is the share of control bytes above which a sample is
// treated as binary even without a NUL byte.
const maxControlPercent = 10

// Kind is the result of classification. It is derived on every access and
// never cached, so edits to a file are always reflected.
type Kind int

const (
	Text Kind = iota
	Binary
)

func (k Kind) String() string {
	if k == Binary {
		return "binary"
	}
	return "text"
}

// Bytes classifies a sample. An empty sample is text. A NUL byte anywhere
// makes it binary; otherwise it is binary only when control bytes that are
// not whitespace make up more than maxControlPercent of the sample.
func Bytes(b []byte) Kind {
	if len(b) == 0 {
		return Text
	}
	control := 0
	for _, c := range b {
		if c == 0 {
			return Binary
		}
		if isControl(c) {
			control++
		}
	}
	if control*100 > len(b)*maxControlPercent {
		return Binary
	}
	return Text
}

// isControl reports whether c is a non-printable byte that rarely appears
// in ordinary text. Only tab, line feed and carriage return are exempt;
// vertical tab and form feed count.
func isControl(c byte) bool {
	switch c {
	case '\t', '\n', '\r':
		return false
	}
	return c < 0x20 || c == 0x7f
}

// File classifies the file at path by reading at most sampleSize bytes
// (DefaultSampleSize when sampleSize <= 0). It only fails when the file
// cannot be opened or read; the handle is closed before returning.
func File(path string, sampleSize int) (Kind, error) {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	f, err := os.Open(path)
	if err != nil {
		return Text, err
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Text, err
	}
	return Bytes(buf[:n]), nil
}
