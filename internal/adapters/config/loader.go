// Package config provides the settings loader for cxxgraph.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	FS     ports.FileSystem
	Logger ports.Logger
}

// NewLoader creates a new Loader reading through fsys.
func NewLoader(fsys ports.FileSystem, logger ports.Logger) *Loader {
	return &Loader{FS: fsys, Logger: logger}
}

// Load applies the override file at path on top of domain.DefaultSettings.
// Keys absent from the file keep their default. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	file := Settingsfile{Settings: domain.DefaultSettings()}

	data, err := l.FS.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.Logger.Debug(fmt.Sprintf("no settings file at %s, using defaults", path))
		return &domain.Config{Settings: file.Settings}, nil
	case err != nil:
		return nil, zerr.With(errors.Join(domain.ErrSettingsReadFailed, err), "path", path)
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSettingsParseFailed, err), "path", path)
	}

	if file.ScanTimeout <= 0 {
		file.ScanTimeout = domain.DefaultScanTimeout
	}

	toolchains, err := l.toolchains(file.Toolchains)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &domain.Config{
		Settings:       file.Settings,
		Toolchains:     toolchains,
		Configurations: file.Configurations,
		Path:           path,
	}, nil
}

func (l *Loader) toolchains(dtos []domain.Toolchain) ([]*domain.Toolchain, error) {
	seen := make(map[string]int, len(dtos))
	out := make([]*domain.Toolchain, 0, len(dtos))

	for i := range dtos {
		tc := dtos[i]
		frontend, err := domain.ParseFrontend(string(tc.Frontend))
		if err != nil {
			return nil, zerr.With(err, "toolchain", tc.Name)
		}
		tc.Frontend = frontend

		if idx, ok := seen[tc.Name]; ok {
			l.Logger.Warn(fmt.Sprintf("toolchain %q declared more than once, the last declaration wins", tc.Name))
			out[idx] = &tc
			continue
		}
		seen[tc.Name] = len(out)
		out = append(out, &tc)
	}

	return out, nil
}
