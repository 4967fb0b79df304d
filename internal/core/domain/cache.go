package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Cache is the root aggregate. It owns every project, file, module, partition
// and build task; all other references between entities are non-owning.
// Containers keep insertion order, which is discovery order within one run.
type Cache struct {
	Settings Settings

	projects       []*Project
	projectsByName map[string]*Project

	sources  []*Source
	headers  []*Header
	sourceIx *FileIndex[*Source]
	headerIx *FileIndex[*Header]

	modules         []*Module
	modulesByName   map[string]*Module
	partitions      []*ModulePartition
	partitionsByKey map[string]*ModulePartition

	// Reverse lookups from a translation unit to the module entity it
	// declares, maintained by the Set/Add methods below.
	interfaceOf      map[*Source]*Module
	partitionOf      map[*Source]*ModulePartition
	implementationOf map[*Source]*Module

	warnings []Warning

	tasks     []BuildTask
	tasksByOf map[any]BuildTask

	toolchains       []*Toolchain
	toolchainsByName map[string]*Toolchain
	configurations   []*Configuration
}

// NewCache creates an empty cache using the given settings.
func NewCache(settings Settings) *Cache {
	return &Cache{
		Settings:         settings,
		projectsByName:   make(map[string]*Project),
		sourceIx:         NewFileIndex[*Source](),
		headerIx:         NewFileIndex[*Header](),
		modulesByName:    make(map[string]*Module),
		partitionsByKey:  make(map[string]*ModulePartition),
		interfaceOf:      make(map[*Source]*Module),
		partitionOf:      make(map[*Source]*ModulePartition),
		implementationOf: make(map[*Source]*Module),
		tasksByOf:        make(map[any]BuildTask),
		toolchainsByName: make(map[string]*Toolchain),
	}
}

// Project returns the project with the given name, creating a library project
// on first reference.
func (c *Cache) Project(name string) *Project {
	if p, ok := c.projectsByName[name]; ok {
		return p
	}
	p := &Project{Name: name, Type: Library}
	c.projects = append(c.projects, p)
	c.projectsByName[name] = p
	return p
}

// LookupProject returns an existing project.
func (c *Cache) LookupProject(name string) (*Project, bool) {
	p, ok := c.projectsByName[name]
	return p, ok
}

// Projects returns all projects in creation order.
func (c *Cache) Projects() []*Project {
	return c.projects
}

// Sources returns all sources in discovery order.
func (c *Cache) Sources() []*Source {
	return c.sources
}

// Headers returns all headers in discovery order.
func (c *Cache) Headers() []*Header {
	return c.headers
}

// SourceIndex returns the lookup index over sources.
func (c *Cache) SourceIndex() *FileIndex[*Source] {
	return c.sourceIx
}

// HeaderIndex returns the lookup index over headers.
func (c *Cache) HeaderIndex() *FileIndex[*Header] {
	return c.headerIx
}

// AddSource returns the source at path, creating it in project if unknown.
// A known source moving to a different project is re-parented. A header at the
// same path is replaced.
func (c *Cache) AddSource(p *Project, path string) (s *Source, created bool) {
	if s, ok := c.sourceIx.Lookup(path); ok {
		if old := s.Project; old != p {
			if old != nil {
				old.Sources = slices.DeleteFunc(old.Sources, func(x *Source) bool { return x == s })
				c.dropIfEmpty(old)
			}
			s.Project = p
			p.Sources = append(p.Sources, s)
		}
		return s, false
	}
	c.removeFile(path, p)
	s = &Source{File: File{Path: path, Project: p}}
	c.sources = append(c.sources, s)
	c.sourceIx.Add(s)
	p.Sources = append(p.Sources, s)
	return s, true
}

// AddHeader returns the header at path, creating it in project if unknown.
// A known header moving to a different project is re-parented. A source at the
// same path is replaced.
func (c *Cache) AddHeader(p *Project, path string) (h *Header, created bool) {
	if h, ok := c.headerIx.Lookup(path); ok {
		if old := h.Project; old != p {
			if old != nil {
				old.Headers = slices.DeleteFunc(old.Headers, func(x *Header) bool { return x == h })
				c.dropIfEmpty(old)
			}
			h.Project = p
			p.Headers = append(p.Headers, h)
		}
		return h, false
	}
	c.removeFile(path, p)
	h = &Header{File: File{Path: path, Project: p}}
	c.headers = append(c.headers, h)
	c.headerIx.Add(h)
	p.Headers = append(p.Headers, h)
	return h, true
}

// RemoveFile removes the source or header at path. It reports whether
// anything was removed. A project left without files is removed as well.
func (c *Cache) RemoveFile(path string) bool {
	return c.removeFile(path, nil)
}

// removeFile removes the file at path, keeping project keep even when it
// ends up empty.
func (c *Cache) removeFile(path string, keep *Project) bool {
	if s, ok := c.sourceIx.Lookup(path); ok {
		c.sourceIx.Remove(s)
		c.sources = slices.DeleteFunc(c.sources, func(x *Source) bool { return x == s })
		if p := s.Project; p != nil {
			p.Sources = slices.DeleteFunc(p.Sources, func(x *Source) bool { return x == s })
			if p != keep {
				c.dropIfEmpty(p)
			}
		}
		return true
	}
	if h, ok := c.headerIx.Lookup(path); ok {
		c.headerIx.Remove(h)
		c.headers = slices.DeleteFunc(c.headers, func(x *Header) bool { return x == h })
		if p := h.Project; p != nil {
			p.Headers = slices.DeleteFunc(p.Headers, func(x *Header) bool { return x == h })
			if p != keep {
				c.dropIfEmpty(p)
			}
		}
		return true
	}
	return false
}

func (c *Cache) dropIfEmpty(p *Project) {
	if len(p.Sources) > 0 || len(p.Headers) > 0 {
		return
	}
	if c.projectsByName[p.Name] != p {
		return
	}
	delete(c.projectsByName, p.Name)
	c.projects = slices.DeleteFunc(c.projects, func(x *Project) bool { return x == p })
}

// Files returns the shared record of every source, then every header.
func (c *Cache) Files() []*File {
	files := make([]*File, 0, len(c.sources)+len(c.headers))
	for _, s := range c.sources {
		files = append(files, &s.File)
	}
	for _, h := range c.headers {
		files = append(files, &h.File)
	}
	return files
}

// Module returns the module with the given name, creating a private
// placeholder without a source on first reference.
func (c *Cache) Module(name string) *Module {
	if m, ok := c.modulesByName[name]; ok {
		return m
	}
	m := &Module{Name: name, Visibility: Private}
	c.modules = append(c.modules, m)
	c.modulesByName[name] = m
	return m
}

// CppModule returns an existing module by name, or nil.
func (c *Cache) CppModule(name string) *Module {
	return c.modulesByName[name]
}

// Modules returns all modules in registration order.
func (c *Cache) Modules() []*Module {
	return c.modules
}

// ModuleOf returns the module whose primary interface is s, or nil.
func (c *Cache) ModuleOf(s *Source) *Module {
	return c.interfaceOf[s]
}

// SetModuleSource makes s the primary interface of m. A nil s clears it.
func (c *Cache) SetModuleSource(m *Module, s *Source) {
	if m.Source != nil && c.interfaceOf[m.Source] == m {
		delete(c.interfaceOf, m.Source)
	}
	m.Source = s
	if s != nil {
		c.interfaceOf[s] = m
	}
}

// AddImplementation records s as an implementation unit of m.
func (c *Cache) AddImplementation(m *Module, s *Source) {
	if slices.Contains(m.Implementations, s) {
		return
	}
	m.Implementations = append(m.Implementations, s)
	c.implementationOf[s] = m
}

// Partition returns the partition name of m, creating it on first reference.
func (c *Cache) Partition(m *Module, name string) *ModulePartition {
	key := PartitionKey(m.Name, name)
	if p, ok := c.partitionsByKey[key]; ok {
		return p
	}
	p := &ModulePartition{Name: name, Module: m, Visibility: Private}
	m.Partitions = append(m.Partitions, p)
	c.partitions = append(c.partitions, p)
	c.partitionsByKey[key] = p
	return p
}

// CppModulePartition returns an existing partition by its `module:partition` key, or nil.
func (c *Cache) CppModulePartition(key string) *ModulePartition {
	return c.partitionsByKey[key]
}

// ModulePartitions returns all partitions in registration order.
func (c *Cache) ModulePartitions() []*ModulePartition {
	return c.partitions
}

// PartitionOf returns the partition implemented by s, or nil.
func (c *Cache) PartitionOf(s *Source) *ModulePartition {
	return c.partitionOf[s]
}

// SetPartitionSource makes s the source of p. A nil s clears it.
func (c *Cache) SetPartitionSource(p *ModulePartition, s *Source) {
	if p.Source != nil && c.partitionOf[p.Source] == p {
		delete(c.partitionOf, p.Source)
	}
	p.Source = s
	if s != nil {
		c.partitionOf[s] = p
	}
}

// ImplementedModule returns the module s is an implementation unit of, or nil.
func (c *Cache) ImplementedModule(s *Source) *Module {
	return c.implementationOf[s]
}

// ResetModules drops every module and partition.
func (c *Cache) ResetModules() {
	c.modules = nil
	c.partitions = nil
	clear(c.modulesByName)
	clear(c.partitionsByKey)
	clear(c.interfaceOf)
	clear(c.partitionOf)
	clear(c.implementationOf)
}

// AddWarning records a non-fatal diagnostic.
func (c *Cache) AddWarning(w Warning) {
	c.warnings = append(c.warnings, w)
}

// Warnings returns the diagnostics of the current run.
func (c *Cache) Warnings() []Warning {
	return c.warnings
}

// ResetWarnings clears all diagnostics.
func (c *Cache) ResetWarnings() {
	c.warnings = nil
}

// Task returns the task built for entity, or nil.
// Entities are *Source, *Project or *Module.
func (c *Cache) Task(entity any) BuildTask {
	return c.tasksByOf[entity]
}

// SetTask binds a task to entity. Binding an entity twice keeps the first task.
func (c *Cache) SetTask(entity any, t BuildTask) {
	if _, ok := c.tasksByOf[entity]; ok {
		return
	}
	c.tasksByOf[entity] = t
	c.tasks = append(c.tasks, t)
}

// Tasks returns all build tasks in creation order.
func (c *Cache) Tasks() []BuildTask {
	return c.tasks
}

// ResetTasks drops every build task.
func (c *Cache) ResetTasks() {
	c.tasks = nil
	clear(c.tasksByOf)
}

// AddToolchain registers t, replacing a toolchain with the same name.
func (c *Cache) AddToolchain(t *Toolchain) {
	if old, ok := c.toolchainsByName[t.Name]; ok {
		i := slices.Index(c.toolchains, old)
		c.toolchains[i] = t
		for _, cfg := range c.configurations {
			if cfg.Toolchain == old {
				cfg.Toolchain = t
			}
		}
	} else {
		c.toolchains = append(c.toolchains, t)
	}
	c.toolchainsByName[t.Name] = t
}

// Toolchain returns a registered toolchain.
func (c *Cache) Toolchain(name string) (*Toolchain, bool) {
	t, ok := c.toolchainsByName[name]
	return t, ok
}

// Toolchains returns all toolchains in registration order.
func (c *Cache) Toolchains() []*Toolchain {
	return c.toolchains
}

// Configure attaches the toolchain named toolchain to a new configuration.
func (c *Cache) Configure(name, toolchain string) (*Configuration, error) {
	for _, cfg := range c.configurations {
		if cfg.Name == name {
			return nil, zerr.With(zerr.Wrap(ErrConfigurationExists, "invalid configuration"), "configuration", name)
		}
	}
	t, ok := c.toolchainsByName[toolchain]
	if !ok {
		return nil, zerr.With(zerr.With(zerr.Wrap(ErrToolchainNotFound, "invalid configuration"), "toolchain", toolchain), "configuration", name)
	}
	cfg := &Configuration{Name: name, Toolchain: t}
	c.configurations = append(c.configurations, cfg)
	return cfg, nil
}

// Configurations returns all configurations in registration order.
func (c *Cache) Configurations() []*Configuration {
	return c.configurations
}

// ResetToolchains drops every toolchain and configuration.
func (c *Cache) ResetToolchains() {
	c.toolchains = nil
	c.configurations = nil
	clear(c.toolchainsByName)
}
