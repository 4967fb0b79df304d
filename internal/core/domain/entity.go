package domain

// Visibility controls whether a dependency or module is re-exported to importers.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// VisibilityOf maps an export flag to a Visibility.
func VisibilityOf(exported bool) Visibility {
	if exported {
		return Public
	}
	return Private
}

// ProjectType is the artifact a project links into.
type ProjectType uint8

const (
	Library ProjectType = iota
	Executable
)

func (t ProjectType) String() string {
	if t == Executable {
		return "executable"
	}
	return "library"
}

// File holds what sources and headers have in common.
// Path is absolute and canonical; two files with the same path are the same entity.
type File struct {
	Path string
	// LogicalPath is the root-relative path with squash and skip directories removed.
	LogicalPath string
	Project     *Project
	// Timestamp is the modification time in nanoseconds since the epoch.
	Timestamp    int64
	Hash         uint64
	Tokens       []Token
	Dependencies []Dependency
}

// Base returns the shared file record.
func (f *File) Base() *File {
	return f
}

// Source is a translation unit.
type Source struct {
	File
}

// Header is an includable or importable header.
type Header struct {
	File
}

// Project groups the sources and headers of one directory subtree.
type Project struct {
	Name    string
	Type    ProjectType
	Sources []*Source
	Headers []*Header
}

// Module is a named C++ module.
type Module struct {
	Name       string
	Visibility Visibility
	// Source provides the primary interface. Nil while only partitions have been seen.
	Source     *Source
	Partitions []*ModulePartition
	// Implementations are units declaring `module Name;` next to an interface.
	Implementations []*Source
}

// ModulePartition is a partition of exactly one Module.
type ModulePartition struct {
	Name       string
	Module     *Module
	Source     *Source
	Visibility Visibility
}

// Key returns the qualified `module:partition` name.
func (p *ModulePartition) Key() string {
	return PartitionKey(p.Module.Name, p.Name)
}

// PartitionKey joins a module and partition name.
func PartitionKey(module, partition string) string {
	return module + ":" + partition
}
