// Package fsutil holds filesystem helpers shared by the packaging pipeline.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WalkFiles returns every regular file reachable under root. Directories are
// pushed onto an explicit work stack instead of being visited by recursive
// calls, so traversal depth does not grow the call stack. The returned order
// is unspecified. The first unreadable directory aborts the walk.
func WalkFiles(root string) ([]string, error) {
	stack := []string{root}
	var files []string
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				stack = append(stack, path)
			case entry.Type().IsRegular():
				files = append(files, path)
			}
		}
	}
	return files, nil
}

// RelSlash returns path relative to base using forward slashes. The boolean is
// false when path does not live under base.
func RelSlash(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
