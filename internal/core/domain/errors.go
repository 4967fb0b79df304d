package domain

import "go.trai.ch/zerr"

var (
	// ErrScanRootNotFound is returned when the scan root does not exist or is not a directory.
	ErrScanRootNotFound = zerr.New("scan root not found")

	// ErrScanTimeout is returned when tokenization jobs do not drain within the configured timeout.
	ErrScanTimeout = zerr.New("timed out waiting for tokenization jobs")

	// ErrFileReadFailed is returned when a source or header cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrFileStatFailed is returned when a source or header cannot be stat'ed.
	ErrFileStatFailed = zerr.New("failed to stat file")

	// ErrCacheReadFailed is returned when the persisted cache cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache file")

	// ErrCacheParseFailed is returned when the persisted cache cannot be decoded.
	ErrCacheParseFailed = zerr.New("failed to parse cache file")

	// ErrCacheWriteFailed is returned when the persisted cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache file")

	// ErrSettingsReadFailed is returned when the settings override file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings override file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrToolchainNotFound is returned when a configuration references an unknown toolchain.
	ErrToolchainNotFound = zerr.New("toolchain not found")

	// ErrUnknownFrontend is returned when a toolchain declares an unsupported compiler frontend.
	ErrUnknownFrontend = zerr.New("unknown compiler frontend, expected 'gcc', 'clang' or 'msvc'")

	// ErrConfigurationExists is returned when a configuration name is registered twice.
	ErrConfigurationExists = zerr.New("configuration already exists")

	// ErrCycleDetected is returned when a cycle is detected in the build task graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskAlreadyExists is returned when two distinct tasks share an identity.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingTask is returned when a task lists an input that is not part of the graph.
	ErrMissingTask = zerr.New("missing input task")
)
