// Package codescan turns the tokens of scanned files into typed dependencies
// and resolves them against the cache.
package codescan

import (
	"path/filepath"

	"go.trai.ch/cxxgraph/internal/core/domain"
)

// Component names the origin of the warnings recorded by the code scanner.
const Component = "CodeScanner"

// CodeScanner classifies tokens into dependencies and links them to the
// headers, sources, modules and partitions they name.
type CodeScanner struct{}

// New creates a new CodeScanner.
func New() *CodeScanner {
	return &CodeScanner{}
}

// Scan classifies every file of cache and resolves the result.
// It returns the number of dependencies left unresolved.
func (s *CodeScanner) Scan(cache *domain.Cache) int {
	s.Classify(cache)
	return s.Resolve(cache)
}

// Classify rebuilds the dependencies of every file from its tokens, along
// with the module registry and the warnings. Sources go first so that modules
// are registered before headers are looked at.
func (s *CodeScanner) Classify(cache *domain.Cache) {
	cache.ResetModules()
	cache.ResetWarnings()

	for _, src := range cache.Sources() {
		classify(cache, &src.File, src)
	}
	for _, hdr := range cache.Headers() {
		classify(cache, &hdr.File, nil)
	}
}

// classify derives the dependencies of f. src is nil when f is a header.
func classify(cache *domain.Cache, f *domain.File, src *domain.Source) {
	settings := &cache.Settings
	c := classifier{cache: cache, file: f, source: src}
	f.Dependencies = nil

	for _, tok := range f.Tokens {
		switch t := tok.(type) {
		case domain.IncludeLocalToken:
			if settings.IsSource(t.Name) {
				c.add(domain.KindIncludeLocalSource, t.Name, domain.Public)
			} else {
				c.add(domain.KindIncludeLocalHeader, t.Name, domain.Public)
			}

		case domain.IncludeExternalToken:
			switch {
			case c.isSTL(t.Name):
				c.add(domain.KindIncludeSTLHeader, t.Name, domain.Public)
			case settings.IsSource(t.Name):
				c.add(domain.KindIncludeExternalSource, t.Name, domain.Public)
			default:
				c.add(domain.KindIncludeExternalHeader, t.Name, domain.Public)
			}

		case domain.ImportIncludeLocalToken:
			if settings.IsSource(t.Name) {
				c.warn("Importing " + t.Name + " is unsupported, only headers can be imported")
				continue
			}
			c.add(domain.KindImportLocalHeader, t.Name, domain.VisibilityOf(t.Exported))

		case domain.ImportIncludeExternalToken:
			switch {
			case c.isSTL(t.Name):
				c.add(domain.KindImportSTLHeader, t.Name, domain.VisibilityOf(t.Exported))
			case settings.IsSource(t.Name):
				c.warn("Importing " + t.Name + " is unsupported, only headers can be imported")
			default:
				c.add(domain.KindImportExternalHeader, t.Name, domain.VisibilityOf(t.Exported))
			}

		case domain.ImportModuleToken:
			c.add(domain.KindImportModuleDependency, t.Name, domain.VisibilityOf(t.Exported))

		case domain.ImportModulePartitionToken:
			if src == nil {
				c.warn("Importing module partitions in headers is unsupported")
				continue
			}
			c.add(domain.KindImportModulePartitionDependency, t.Name, domain.VisibilityOf(t.Exported))

		case domain.ModuleToken:
			if src == nil {
				c.warn("Declaring modules in headers is unsupported")
				continue
			}
			c.declareModule(t)

		case domain.ModulePartitionToken:
			if src == nil {
				c.warn("Declaring module partitions in headers is unsupported")
				continue
			}
			c.declarePartition(t)
		}
	}
}

type classifier struct {
	cache    *domain.Cache
	file     *domain.File
	source   *domain.Source
	declared bool
}

func (c *classifier) add(kind domain.DependencyKind, name string, vis domain.Visibility) {
	c.file.Dependencies = append(c.file.Dependencies, domain.NewDependency(kind, name, vis))
}

func (c *classifier) warn(msg string) {
	c.cache.AddWarning(domain.Warning{Component: Component, Message: msg, Path: c.file.Path})
}

// isSTL reports whether an angle-bracket name refers to the standard library.
// Names carrying a known C++ extension never do.
func (c *classifier) isSTL(name string) bool {
	settings := &c.cache.Settings
	if filepath.Ext(name) != "" && (settings.IsSource(name) || settings.IsHeader(name)) {
		return false
	}
	return IsSTLHeader(name)
}

// claim reports whether this is the first module declaration of the source.
// A translation unit belongs to at most one module or partition.
func (c *classifier) claim() bool {
	if c.declared {
		c.warn("multiple module declarations in one translation unit, only the first is used")
		return false
	}
	c.declared = true
	return true
}

// declareModule registers `[export] module Name;`. An exported declaration is
// the primary interface. A plain declaration is an implementation unit; it
// stands in for the module while no interface has been seen.
func (c *classifier) declareModule(t domain.ModuleToken) {
	if !c.claim() {
		return
	}
	m := c.cache.Module(t.Name)

	if !t.Exported {
		if m.Source == nil {
			c.cache.SetModuleSource(m, c.source)
			return
		}
		c.cache.AddImplementation(m, c.source)
		return
	}

	switch {
	case m.Source == nil:
		c.cache.SetModuleSource(m, c.source)
	case m.Visibility == domain.Private:
		c.cache.AddImplementation(m, m.Source)
		c.cache.SetModuleSource(m, c.source)
	default:
		c.warn("module " + t.Name + " already has an interface in " + m.Source.Path)
		return
	}
	m.Visibility = domain.Public
}

// declarePartition registers `[export] module Mod:Name;`, creating a private
// placeholder module when its interface has not been seen yet.
func (c *classifier) declarePartition(t domain.ModulePartitionToken) {
	if !c.claim() {
		return
	}
	m := c.cache.Module(t.Mod)
	p := c.cache.Partition(m, t.Name)
	if p.Source != nil {
		c.warn("module partition " + p.Key() + " is already declared in " + p.Source.Path)
		return
	}
	c.cache.SetPartitionSource(p, c.source)
	p.Visibility = domain.VisibilityOf(t.Exported)
}
