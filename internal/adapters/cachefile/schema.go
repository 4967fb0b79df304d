package cachefile

import "go.trai.ch/cxxgraph/internal/core/domain"

// Version is the current layout of the cache document. A document written
// with any other version is discarded on load.
const Version = 1

// Document represents the structure of the persisted cache file.
type Document struct {
	Version          int                       `yaml:"version"`
	Settings         domain.Settings           `yaml:"settings"`
	Toolchains       []domain.Toolchain        `yaml:"toolchains,omitempty"`
	Configurations   []domain.ConfigurationRef `yaml:"configurations,omitempty"`
	Projects         []ProjectDTO              `yaml:"projects"`
	Sources          []FileDTO                 `yaml:"sources"`
	Headers          []FileDTO                 `yaml:"headers"`
	Modules          []ModuleDTO               `yaml:"modules,omitempty"`
	ModulePartitions []PartitionDTO            `yaml:"modulePartitions,omitempty"`
}

// ProjectDTO represents a project entry.
type ProjectDTO struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FileDTO represents a source or header entry. Tokens and dependencies are
// positional tuples whose first element is the stable kind index.
type FileDTO struct {
	Path         string  `yaml:"path"`
	LogicalPath  string  `yaml:"logicalPath,omitempty"`
	Project      string  `yaml:"project"`
	Timestamp    int64   `yaml:"timestamp"`
	Hash         string  `yaml:"hash"`
	Tokens       [][]any `yaml:"tokens,omitempty,flow"`
	Dependencies [][]any `yaml:"dependencies,omitempty,flow"`
}

// ModuleDTO represents a module entry. Sources are referenced by path.
type ModuleDTO struct {
	Name            string   `yaml:"name"`
	Visibility      string   `yaml:"visibility"`
	Source          string   `yaml:"source,omitempty"`
	Implementations []string `yaml:"implementations,omitempty"`
}

// PartitionDTO represents a module partition entry.
type PartitionDTO struct {
	Module     string `yaml:"module"`
	Name       string `yaml:"name"`
	Visibility string `yaml:"visibility"`
	Source     string `yaml:"source,omitempty"`
}
