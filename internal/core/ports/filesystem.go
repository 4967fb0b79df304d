package ports

import (
	"io/fs"
	"iter"
)

// FileSystem is the subset of filesystem operations the scanner needs.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns file info for path, following symlinks.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile returns the full content of path.
	ReadFile(path string) ([]byte, error)
	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error
}

// Walker enumerates the files of a directory tree.
type Walker interface {
	// WalkFiles yields every regular file below root in lexical order.
	// Directories for which prune reports true are not descended into.
	WalkFiles(root string, prune func(dir string) bool) iter.Seq[string]
}
