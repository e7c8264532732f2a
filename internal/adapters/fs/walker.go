// Package fs provides file system adapters for walking, fingerprinting and copying project files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// alwaysSkipped lists directory names that never contain project sources.
var alwaysSkipped = []string{".git", ".jj", "node_modules", "bin", "obj", "__pycache__"}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root in lexical order.
// An ignore entry is either a base-name glob or an absolute path; matching
// directories are pruned and matching files are dropped.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return err
			}

			if path != root && w.ignored(path, d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

func (w *Walker) ignored(path string, d fs.DirEntry, ignores []string) bool {
	name := d.Name()

	if d.IsDir() && slices.Contains(alwaysSkipped, name) {
		return true
	}

	for _, ignore := range ignores {
		if filepath.IsAbs(ignore) {
			if filepath.Clean(ignore) == path {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}

	return false
}
