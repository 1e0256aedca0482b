package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Path validates a filesystem path and returns it in absolute, cleaned form.
//
// Validation rules:
//   - Empty or whitespace-only paths rejected
//   - Null bytes rejected (the OS would truncate or refuse them)
//
// Making the path absolute here means both search backends see the same
// root and therefore report identical match paths.
func Path(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidInput)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidInput)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return abs, nil
}

// Stat wraps os.Stat, mapping the failures callers care about to sentinel kinds.
func Stat(p string) (fs.FileInfo, error) {
	info, err := os.Stat(p)
	switch {
	case err == nil:
		return info, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrNotFound, p)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, p)
	default:
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
}

// Dir validates that p names an existing directory and returns its absolute path.
func Dir(p string) (string, error) {
	abs, err := Path(p)
	if err != nil {
		return "", err
	}
	info, err := Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, p)
	}
	return abs, nil
}

// File validates that p names an existing regular file.
// Directories, devices, sockets and pipes are rejected as invalid input.
func File(p string) (string, fs.FileInfo, error) {
	abs, err := Path(p)
	if err != nil {
		return "", nil, err
	}
	info, err := Stat(abs)
	if err != nil {
		return "", nil, err
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, p)
	}
	if !info.Mode().IsRegular() {
		return "", nil, fmt.Errorf("%w: %s is not a regular file", ErrInvalidInput, p)
	}
	return abs, info, nil
}
