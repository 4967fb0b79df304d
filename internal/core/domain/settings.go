package domain

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DefaultScanTimeout bounds how long a scan waits for tokenization jobs to drain.
const DefaultScanTimeout = 300 * time.Second

// Settings is the read-only configuration consumed by the scanner and the code scanner.
type Settings struct {
	SourceExtensions     []string      `yaml:"cppSourceExtensions"`
	HeaderExtensions     []string      `yaml:"cppHeaderExtensions"`
	IgnoreDirectories    []string      `yaml:"ignoreDirectories"`
	SkipDirectories      []string      `yaml:"skipDirectories"`
	SquashDirectories    []string      `yaml:"squashDirectories"`
	TestDirectories      []string      `yaml:"testDirectories"`
	ExecutableFilenames  []string      `yaml:"executableFilenames"`
	ProjectNameSeparator string        `yaml:"projectNameSeparator"`
	Workers              int           `yaml:"workers"`
	ScanTimeout          time.Duration `yaml:"scanTimeout"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		SourceExtensions:     []string{".cpp", ".cxx", ".cc", ".c++", ".c", ".ixx", ".cppm", ".mpp"},
		HeaderExtensions:     []string{".h", ".hpp", ".hxx", ".hh", ".h++", ".inl", ".ipp", ".tpp"},
		IgnoreDirectories:    []string{"build", "out", "node_modules"},
		SkipDirectories:      []string{"projects", "libs"},
		SquashDirectories:    []string{"src", "include", "source", "sources"},
		TestDirectories:      []string{"test", "tests"},
		ExecutableFilenames:  []string{"main"},
		ProjectNameSeparator: ".",
		ScanTimeout:          DefaultScanTimeout,
	}
}

// IsSource reports whether name carries a C++ source extension.
func (s *Settings) IsSource(name string) bool {
	ext := filepath.Ext(name)
	return ext != "" && slices.Contains(s.SourceExtensions, ext)
}

// IsHeader reports whether name carries a C++ header extension.
func (s *Settings) IsHeader(name string) bool {
	ext := filepath.Ext(name)
	return ext != "" && slices.Contains(s.HeaderExtensions, ext)
}

// IsIgnored reports whether a directory must be pruned from the walk.
// Hidden directories are always pruned.
func (s *Settings) IsIgnored(dir string) bool {
	return strings.HasPrefix(dir, ".") || slices.Contains(s.IgnoreDirectories, dir)
}

// IsSkipped reports whether a directory is left out of project names.
func (s *Settings) IsSkipped(dir string) bool {
	return slices.Contains(s.SkipDirectories, dir)
}

// IsSquashed reports whether a directory organizes files without naming a project.
func (s *Settings) IsSquashed(dir string) bool {
	return slices.Contains(s.SquashDirectories, dir)
}

// IsTest reports whether a directory holds tests.
func (s *Settings) IsTest(dir string) bool {
	return slices.Contains(s.TestDirectories, dir)
}

// IsExecutable reports whether a source file's stem marks an executable project.
func (s *Settings) IsExecutable(name string) bool {
	base := filepath.Base(name)
	return slices.Contains(s.ExecutableFilenames, strings.TrimSuffix(base, filepath.Ext(base)))
}

// Separator returns the project name separator, falling back to ".".
func (s *Settings) Separator() string {
	if s.ProjectNameSeparator == "" {
		return "."
	}
	return s.ProjectNameSeparator
}

// ConfigurationRef names a configuration and the toolchain it selects.
type ConfigurationRef struct {
	Name      string `yaml:"name"`
	Toolchain string `yaml:"toolchain"`
}

// Config is the result of applying a settings override file to the defaults.
type Config struct {
	Settings       Settings
	Toolchains     []*Toolchain
	Configurations []ConfigurationRef
	// Path is the override file that was applied, or empty when none exists.
	Path string
}
