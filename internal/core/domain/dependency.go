package domain

// DependencyKind is the stable variant index of a Dependency.
type DependencyKind uint8

const (
	KindIncludeLocalHeader DependencyKind = iota
	KindIncludeExternalHeader
	KindIncludeSTLHeader
	KindIncludeLocalSource
	KindIncludeExternalSource
	KindImportLocalHeader
	KindImportExternalHeader
	KindImportSTLHeader
	KindImportModuleDependency
	KindImportModulePartitionDependency
)

var dependencyKindNames = [...]string{
	KindIncludeLocalHeader:              "include-local-header",
	KindIncludeExternalHeader:           "include-external-header",
	KindIncludeSTLHeader:                "include-stl-header",
	KindIncludeLocalSource:              "include-local-source",
	KindIncludeExternalSource:           "include-external-source",
	KindImportLocalHeader:               "import-local-header",
	KindImportExternalHeader:            "import-external-header",
	KindImportSTLHeader:                 "import-stl-header",
	KindImportModuleDependency:          "import-module",
	KindImportModulePartitionDependency: "import-module-partition",
}

func (k DependencyKind) String() string {
	if int(k) < len(dependencyKindNames) {
		return dependencyKindNames[k]
	}
	return "unknown"
}

// DependencyInfo is the written name and visibility shared by every dependency.
type DependencyInfo struct {
	Name       string
	Visibility Visibility
}

// Info returns the written name and visibility.
func (d DependencyInfo) Info() DependencyInfo {
	return d
}

// Dependency is a typed edge from a file to a header, source, module or partition.
// Implementations are pointers so the resolution pass can fill back-references in place.
type Dependency interface {
	Kind() DependencyKind
	Info() DependencyInfo
	isDependency()
}

type (
	IncludeLocalHeaderDependency struct {
		DependencyInfo
		Header *Header
	}
	IncludeExternalHeaderDependency struct {
		DependencyInfo
		Header *Header
	}
	IncludeSTLHeaderDependency struct {
		DependencyInfo
	}
	IncludeLocalSourceDependency struct {
		DependencyInfo
		Source *Source
	}
	IncludeExternalSourceDependency struct {
		DependencyInfo
		Source *Source
	}
	ImportLocalHeaderDependency struct {
		DependencyInfo
		Header *Header
	}
	ImportExternalHeaderDependency struct {
		DependencyInfo
		Header *Header
	}
	ImportSTLHeaderDependency struct {
		DependencyInfo
	}
	ImportModuleDependency struct {
		DependencyInfo
		Module *Module
	}
	ImportModulePartitionDependency struct {
		DependencyInfo
		Partition *ModulePartition
	}
)

func (*IncludeLocalHeaderDependency) Kind() DependencyKind    { return KindIncludeLocalHeader }
func (*IncludeExternalHeaderDependency) Kind() DependencyKind { return KindIncludeExternalHeader }
func (*IncludeSTLHeaderDependency) Kind() DependencyKind      { return KindIncludeSTLHeader }
func (*IncludeLocalSourceDependency) Kind() DependencyKind    { return KindIncludeLocalSource }
func (*IncludeExternalSourceDependency) Kind() DependencyKind { return KindIncludeExternalSource }
func (*ImportLocalHeaderDependency) Kind() DependencyKind     { return KindImportLocalHeader }
func (*ImportExternalHeaderDependency) Kind() DependencyKind  { return KindImportExternalHeader }
func (*ImportSTLHeaderDependency) Kind() DependencyKind       { return KindImportSTLHeader }
func (*ImportModuleDependency) Kind() DependencyKind          { return KindImportModuleDependency }
func (*ImportModulePartitionDependency) Kind() DependencyKind { return KindImportModulePartitionDependency }

func (*IncludeLocalHeaderDependency) isDependency()    {}
func (*IncludeExternalHeaderDependency) isDependency() {}
func (*IncludeSTLHeaderDependency) isDependency()      {}
func (*IncludeLocalSourceDependency) isDependency()    {}
func (*IncludeExternalSourceDependency) isDependency() {}
func (*ImportLocalHeaderDependency) isDependency()     {}
func (*ImportExternalHeaderDependency) isDependency()  {}
func (*ImportSTLHeaderDependency) isDependency()       {}
func (*ImportModuleDependency) isDependency()          {}
func (*ImportModulePartitionDependency) isDependency() {}

// NewDependency builds an unresolved dependency of the given kind.
// It returns nil for an unknown kind.
func NewDependency(kind DependencyKind, name string, vis Visibility) Dependency {
	info := DependencyInfo{Name: name, Visibility: vis}
	switch kind {
	case KindIncludeLocalHeader:
		return &IncludeLocalHeaderDependency{DependencyInfo: info}
	case KindIncludeExternalHeader:
		return &IncludeExternalHeaderDependency{DependencyInfo: info}
	case KindIncludeSTLHeader:
		return &IncludeSTLHeaderDependency{DependencyInfo: info}
	case KindIncludeLocalSource:
		return &IncludeLocalSourceDependency{DependencyInfo: info}
	case KindIncludeExternalSource:
		return &IncludeExternalSourceDependency{DependencyInfo: info}
	case KindImportLocalHeader:
		return &ImportLocalHeaderDependency{DependencyInfo: info}
	case KindImportExternalHeader:
		return &ImportExternalHeaderDependency{DependencyInfo: info}
	case KindImportSTLHeader:
		return &ImportSTLHeaderDependency{DependencyInfo: info}
	case KindImportModuleDependency:
		return &ImportModuleDependency{DependencyInfo: info}
	case KindImportModulePartitionDependency:
		return &ImportModulePartitionDependency{DependencyInfo: info}
	default:
		return nil
	}
}

// IsResolved reports whether a dependency's back-reference is set.
// STL dependencies never resolve to an entity and always report true.
func IsResolved(d Dependency) bool {
	switch d := d.(type) {
	case *IncludeLocalHeaderDependency:
		return d.Header != nil
	case *IncludeExternalHeaderDependency:
		return d.Header != nil
	case *IncludeLocalSourceDependency:
		return d.Source != nil
	case *IncludeExternalSourceDependency:
		return d.Source != nil
	case *ImportLocalHeaderDependency:
		return d.Header != nil
	case *ImportExternalHeaderDependency:
		return d.Header != nil
	case *ImportModuleDependency:
		return d.Module != nil
	case *ImportModulePartitionDependency:
		return d.Partition != nil
	default:
		return true
	}
}
