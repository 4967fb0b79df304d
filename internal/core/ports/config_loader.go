package ports

import "go.trai.ch/cxxgraph/internal/core/domain"

// SettingsLoader reads the optional settings override file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load applies the override file at path on top of the built-in defaults.
	// A missing file yields the defaults.
	Load(path string) (*domain.Config, error)
}
