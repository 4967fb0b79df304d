package domain

import "path/filepath"

const (
	// MetaDirName is the name of the per-root metadata directory.
	MetaDirName = ".cxxgraph"

	// CacheFileName is the name of the persisted cache document.
	CacheFileName = "cache.yaml"

	// SettingsFileName is the name of the optional settings override file.
	SettingsFileName = "cxxgraph.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultMetaPath returns the metadata directory for a scan root.
func DefaultMetaPath(root string) string {
	return filepath.Join(root, MetaDirName)
}

// DefaultCachePath returns the path of the persisted cache for a scan root.
// It joins root, .cxxgraph and cache.yaml.
func DefaultCachePath(root string) string {
	return filepath.Join(root, MetaDirName, CacheFileName)
}

// DefaultSettingsPath returns the path of the settings override file for a scan root.
func DefaultSettingsPath(root string) string {
	return filepath.Join(root, SettingsFileName)
}
