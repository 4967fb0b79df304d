package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Frontend identifies the compiler family of a toolchain.
type Frontend string

const (
	FrontendGCC   Frontend = "gcc"
	FrontendClang Frontend = "clang"
	FrontendMSVC  Frontend = "msvc"
)

// ParseFrontend maps a case-insensitive frontend name to a Frontend.
func ParseFrontend(s string) (Frontend, error) {
	switch f := Frontend(strings.ToLower(strings.TrimSpace(s))); f {
	case FrontendGCC, FrontendClang, FrontendMSVC:
		return f, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownFrontend, "invalid toolchain"), "frontend", s)
	}
}

// ABI describes the target of a toolchain.
type ABI struct {
	Architecture string `yaml:"architecture"`
	Bitness      int    `yaml:"bitness"`
	Platform     string `yaml:"platform"`
}

// Toolchain is a consumed descriptor of compiler, linker and archiver paths.
// No binary referenced here is ever executed.
type Toolchain struct {
	Name          string   `yaml:"name"`
	Frontend      Frontend `yaml:"frontend"`
	CCompiler     string   `yaml:"cCompiler"`
	CppCompiler   string   `yaml:"cppCompiler"`
	Linker        string   `yaml:"linker"`
	Archiver      string   `yaml:"archiver"`
	ABI           ABI      `yaml:"abi"`
	CFlags        []string `yaml:"cFlags,omitempty"`
	CppFlags      []string `yaml:"cppFlags,omitempty"`
	LinkerFlags   []string `yaml:"linkerFlags,omitempty"`
	ArchiverFlags []string `yaml:"archiverFlags,omitempty"`
}

// Configuration binds a named build configuration to a toolchain.
type Configuration struct {
	Name      string
	Toolchain *Toolchain
}
