package config

import "go.trai.ch/cxxgraph/internal/core/domain"

// Settingsfile represents the structure of the cxxgraph.yaml override file.
// Settings keys live at the top level next to the toolchain declarations.
type Settingsfile struct {
	domain.Settings `yaml:",inline"`
	Toolchains      []domain.Toolchain        `yaml:"toolchains"`
	Configurations  []domain.ConfigurationRef `yaml:"configurations"`
}
