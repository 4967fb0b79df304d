// Package buildgraph derives the compile and link tasks of a resolved cache.
package buildgraph

import (
	"go.trai.ch/cxxgraph/internal/core/domain"
)

// Builder creates build tasks and orders them into a graph.
type Builder struct{}

// New creates a new Builder.
func New() *Builder {
	return &Builder{}
}

// Build replaces the tasks of cache and returns them as a validated graph.
//
// Every project with at least one plain source gets a link task matching its
// type and every module gets a module link task. Each source then gets exactly
// one compile task feeding the link task it belongs to. Finally, compile tasks
// take the interface and partition tasks of what they import as inputs, and
// link tasks take the module link tasks their objects import.
func (b *Builder) Build(cache *domain.Cache) (*domain.TaskGraph, error) {
	cache.ResetTasks()

	for _, p := range cache.Projects() {
		if !hasPlainSource(cache, p) {
			continue
		}
		if p.Type == domain.Executable {
			cache.SetTask(p, &domain.LinkExecutableTask{Project: p})
		} else {
			cache.SetTask(p, &domain.LinkLibraryTask{Project: p})
		}
	}

	for _, m := range cache.Modules() {
		cache.SetTask(m, &domain.LinkModuleLibraryTask{Module: m})
	}

	for _, s := range cache.Sources() {
		compileTask(cache, s)
	}

	for _, s := range cache.Sources() {
		wireImports(cache, s)
	}

	graph := domain.NewTaskGraph()
	for _, t := range cache.Tasks() {
		if err := graph.AddTask(t); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

// hasPlainSource reports whether p owns a source that is neither part of a
// module nor a partition.
func hasPlainSource(cache *domain.Cache, p *domain.Project) bool {
	for _, s := range p.Sources {
		if ownerModule(cache, s) == nil {
			return true
		}
	}
	return false
}

// ownerModule returns the module s is compiled into, or nil for a plain source.
func ownerModule(cache *domain.Cache, s *domain.Source) *domain.Module {
	if m := cache.ModuleOf(s); m != nil {
		return m
	}
	if p := cache.PartitionOf(s); p != nil {
		return p.Module
	}
	return cache.ImplementedModule(s)
}

// linkTask returns the link task the objects of s end up in.
func linkTask(cache *domain.Cache, s *domain.Source) domain.BuildTask {
	if m := ownerModule(cache, s); m != nil {
		return cache.Task(m)
	}
	if s.Project == nil {
		return nil
	}
	return cache.Task(s.Project)
}

// compileTask returns the compile task of s, creating it on first call. Only
// the call that creates the task feeds it to a link task, so repeated calls
// never add an input twice.
func compileTask(cache *domain.Cache, s *domain.Source) domain.BuildTask {
	if t := cache.Task(s); t != nil {
		return t
	}

	var t domain.BuildTask
	switch {
	case cache.ModuleOf(s) != nil:
		t = &domain.CompileModuleInterfaceTask{Source: s}
	case cache.PartitionOf(s) != nil:
		t = &domain.CompileModulePartitionTask{Source: s}
	default:
		t = &domain.CompileSourceTask{Source: s}
	}
	cache.SetTask(s, t)

	if link := linkTask(cache, s); link != nil {
		link.AddInput(t)
	}
	return t
}

// wireImports makes the tasks of s depend on the modules and partitions it imports.
func wireImports(cache *domain.Cache, s *domain.Source) {
	compile := compileTask(cache, s)
	link := linkTask(cache, s)

	// Implementation units implicitly import the interface of their module.
	if m := cache.ImplementedModule(s); m != nil && m.Source != nil {
		addInput(compile, compileTask(cache, m.Source))
	}

	for _, dep := range s.Dependencies {
		switch d := dep.(type) {
		case *domain.ImportModuleDependency:
			if d.Module == nil {
				continue
			}
			if d.Module.Source != nil {
				addInput(compile, compileTask(cache, d.Module.Source))
			}
			if link != nil {
				addInput(link, cache.Task(d.Module))
			}
		case *domain.ImportModulePartitionDependency:
			if d.Partition == nil || d.Partition.Source == nil {
				continue
			}
			addInput(compile, compileTask(cache, d.Partition.Source))
		}
	}
}

// addInput appends in to t unless it is t itself or already an input.
func addInput(t, in domain.BuildTask) {
	if in == nil || in == t || domain.HasInput(t, in) {
		return
	}
	t.AddInput(in)
}
