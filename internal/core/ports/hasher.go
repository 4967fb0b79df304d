package ports

// Hasher computes content digests used for change detection.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashContent returns the digest of an in-memory file.
	HashContent(content []byte) uint64
	// ComputeFileHash streams the file at path into a digest.
	ComputeFileHash(path string) (uint64, error)
}
