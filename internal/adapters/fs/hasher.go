package fs

import (
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of file content.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the XXHash of content.
func (h *Hasher) HashContent(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// ComputeFileHash streams the file at path through XXHash.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(errors.Join(domain.ErrFileReadFailed, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(errors.Join(domain.ErrFileReadFailed, err), "path", path)
	}
	return digest.Sum64(), nil
}
