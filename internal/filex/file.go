// Package filex has small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path (with 0o770
// permissions) and returns the absolute path of the file.
func EnsureParentDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return abs, nil
}

// OpenAppend opens path for appending, creating it and its directory when
// missing. Used for log files.
func OpenAppend(path string) (*os.File, error) {
	abs, err := EnsureParentDir(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	return f, nil
}
