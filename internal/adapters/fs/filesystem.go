package fs

import (
	"io/fs"
	"os"

	"go.trai.ch/cxxgraph/internal/core/ports"
)

var _ ports.FileSystem = (*OSFS)(nil)

// OSFS implements ports.FileSystem using the standard library.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from the directory walk
	return os.ReadFile(path)
}

// RemoveAll deletes path and everything below it.
func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
