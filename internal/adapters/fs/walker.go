// Package fs provides file system adapters for walking, reading and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/cxxgraph/internal/core/ports"
)

var _ ports.Walker = (*Walker)(nil)

// Walker enumerates regular files below a root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the path of every regular file below root, root included
// in the path, in lexical order. VCS metadata directories are always pruned;
// any other directory is pruned when prune reports true for its name.
// Unreadable directories are skipped.
func (w *Walker) WalkFiles(root string, prune func(dir string) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return err
			}

			if d.IsDir() {
				if path != root && w.shouldPrune(d.Name(), prune) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldPrune(name string, prune func(string) bool) bool {
	switch name {
	case ".git", ".jj", ".hg", ".svn":
		return true
	}
	return prune != nil && prune(name)
}
