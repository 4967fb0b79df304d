package codescan

import (
	"path/filepath"

	"go.trai.ch/cxxgraph/internal/core/domain"
)

// Resolve links every dependency of every file to the entity it names and
// returns the number of dependencies that stay unresolved. Back-references
// from earlier passes are recomputed, never kept.
func (s *CodeScanner) Resolve(cache *domain.Cache) int {
	unresolved := 0
	for _, src := range cache.Sources() {
		unresolved += resolveFile(cache, &src.File, owningModule(cache, src))
	}
	for _, hdr := range cache.Headers() {
		unresolved += resolveFile(cache, &hdr.File, nil)
	}
	return unresolved
}

// owningModule returns the module a source belongs to as interface,
// partition or implementation unit.
func owningModule(cache *domain.Cache, src *domain.Source) *domain.Module {
	if m := cache.ModuleOf(src); m != nil {
		return m
	}
	if p := cache.PartitionOf(src); p != nil {
		return p.Module
	}
	return cache.ImplementedModule(src)
}

func resolveFile(cache *domain.Cache, f *domain.File, module *domain.Module) int {
	hint := filepath.Dir(f.Path)
	headers := cache.HeaderIndex()
	sources := cache.SourceIndex()

	unresolved := 0
	for _, dep := range f.Dependencies {
		switch d := dep.(type) {
		case *domain.IncludeLocalHeaderDependency:
			d.Header = headers.Find(d.Name, hint)
		case *domain.IncludeExternalHeaderDependency:
			d.Header = headers.Find(d.Name, "")
		case *domain.IncludeLocalSourceDependency:
			d.Source = sources.Find(d.Name, hint)
		case *domain.IncludeExternalSourceDependency:
			d.Source = sources.Find(d.Name, "")
		case *domain.ImportLocalHeaderDependency:
			d.Header = headers.Find(d.Name, hint)
		case *domain.ImportExternalHeaderDependency:
			d.Header = headers.Find(d.Name, "")
		case *domain.ImportModuleDependency:
			d.Module = cache.CppModule(d.Name)
		case *domain.ImportModulePartitionDependency:
			d.Partition = nil
			if module != nil {
				d.Partition = cache.CppModulePartition(domain.PartitionKey(module.Name, d.Name))
			}
		}
		if !domain.IsResolved(dep) {
			unresolved++
		}
	}
	return unresolved
}
