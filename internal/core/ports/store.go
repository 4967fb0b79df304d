package ports

import "go.trai.ch/cxxgraph/internal/core/domain"

// CacheStore persists the scan cache between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Load reads the cache at path. A missing file yields an empty cache built
	// on settings. Entries whose files no longer exist are dropped.
	Load(path string, settings domain.Settings) (*domain.Cache, error)

	// Save writes the cache to path atomically.
	Save(path string, cache *domain.Cache) error
}
