// Package cachefile persists the scan cache as a YAML document.
package cachefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore using a single YAML file.
type Store struct {
	FS     ports.FileSystem
	Logger ports.Logger
}

// NewStore creates a new Store. fsys is used to read the document and to
// check that cached files still exist.
func NewStore(fsys ports.FileSystem, logger ports.Logger) *Store {
	return &Store{FS: fsys, Logger: logger}
}

// Load reads the cache document at path into a cache built on settings.
// A missing or empty file, or a document of another version, yields an empty
// cache. Files that no longer exist are dropped. Dependencies come back
// unresolved.
func (s *Store) Load(path string, settings domain.Settings) (*domain.Cache, error) {
	cache := domain.NewCache(settings)

	data, err := s.FS.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cache, nil
	case err != nil:
		return nil, zerr.With(errors.Join(domain.ErrCacheReadFailed, err), "path", path)
	case len(data) == 0:
		return cache, nil
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheParseFailed, err), "path", path)
	}

	if doc.Version != Version {
		s.Logger.Debug(fmt.Sprintf("discarding cache version %d, expected %d", doc.Version, Version))
		return cache, nil
	}

	s.restore(cache, &doc)
	return cache, nil
}

func (s *Store) restore(cache *domain.Cache, doc *Document) {
	types := make(map[string]domain.ProjectType, len(doc.Projects))
	for _, p := range doc.Projects {
		if p.Type == domain.Executable.String() {
			types[p.Name] = domain.Executable
		} else {
			types[p.Name] = domain.Library
		}
	}

	project := func(name string) *domain.Project {
		_, existed := cache.LookupProject(name)
		p := cache.Project(name)
		if !existed {
			p.Type = types[name]
		}
		return p
	}

	dropped := 0
	for i := range doc.Sources {
		dto := &doc.Sources[i]
		if !s.exists(dto.Path) {
			dropped++
			continue
		}
		src, _ := cache.AddSource(project(dto.Project), dto.Path)
		s.restoreFile(&src.File, dto)
	}
	for i := range doc.Headers {
		dto := &doc.Headers[i]
		if !s.exists(dto.Path) {
			dropped++
			continue
		}
		h, _ := cache.AddHeader(project(dto.Project), dto.Path)
		s.restoreFile(&h.File, dto)
	}
	if dropped > 0 {
		s.Logger.Debug(fmt.Sprintf("dropped %d cached files that no longer exist", dropped))
	}

	for _, dto := range doc.Modules {
		m := cache.Module(dto.Name)
		m.Visibility = parseVisibility(dto.Visibility)
		cache.SetModuleSource(m, lookupSource(cache, dto.Source))
		for _, impl := range dto.Implementations {
			if src := lookupSource(cache, impl); src != nil {
				cache.AddImplementation(m, src)
			}
		}
	}
	for _, dto := range doc.ModulePartitions {
		part := cache.Partition(cache.Module(dto.Module), dto.Name)
		part.Visibility = parseVisibility(dto.Visibility)
		cache.SetPartitionSource(part, lookupSource(cache, dto.Source))
	}

	for i := range doc.Toolchains {
		tc := doc.Toolchains[i]
		cache.AddToolchain(&tc)
	}
	for _, ref := range doc.Configurations {
		if _, err := cache.Configure(ref.Name, ref.Toolchain); err != nil {
			s.Logger.Debug(fmt.Sprintf("skipping cached configuration %q: %v", ref.Name, err))
		}
	}
}

// restoreFile copies the persisted fields into f. A file whose tokens or
// dependencies cannot be decoded loses its timestamp, so the next scan
// tokenizes it again.
func (s *Store) restoreFile(f *domain.File, dto *FileDTO) {
	f.LogicalPath = dto.LogicalPath
	f.Timestamp = dto.Timestamp

	hash, err := strconv.ParseUint(dto.Hash, 16, 64)
	if err != nil {
		hash = 0
	}
	f.Hash = hash

	tokens := make([]domain.Token, 0, len(dto.Tokens))
	for _, raw := range dto.Tokens {
		t, err := decodeToken(raw)
		if err != nil {
			s.invalidate(f, err)
			return
		}
		tokens = append(tokens, t)
	}
	f.Tokens = tokens

	deps := make([]domain.Dependency, 0, len(dto.Dependencies))
	for _, raw := range dto.Dependencies {
		d, err := decodeDependency(raw)
		if err != nil {
			s.invalidate(f, err)
			return
		}
		deps = append(deps, d)
	}
	f.Dependencies = deps
}

func (s *Store) invalidate(f *domain.File, cause error) {
	s.Logger.Debug(fmt.Sprintf("invalidating cached entry %s: %v", f.Path, cause))
	f.Timestamp = 0
	f.Hash = 0
	f.Tokens = nil
	f.Dependencies = nil
}

func (s *Store) exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := s.FS.Stat(path)
	return err == nil
}

// Save writes cache to path through a temporary file in the same directory,
// so readers never observe a partially written document.
func (s *Store) Save(path string, cache *domain.Cache) error {
	data, err := yaml.Marshal(snapshot(cache))
	if err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", dir)
	}

	tmpFile, err := os.CreateTemp(dir, ".cache-*.yaml")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", dir)
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", tmpName)
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", path)
	}

	return nil
}

func snapshot(cache *domain.Cache) *Document {
	doc := &Document{
		Version:  Version,
		Settings: cache.Settings,
	}

	for _, p := range cache.Projects() {
		doc.Projects = append(doc.Projects, ProjectDTO{Name: p.Name, Type: p.Type.String()})
	}
	for _, src := range cache.Sources() {
		doc.Sources = append(doc.Sources, fileDTO(&src.File))
	}
	for _, h := range cache.Headers() {
		doc.Headers = append(doc.Headers, fileDTO(&h.File))
	}

	for _, m := range cache.Modules() {
		dto := ModuleDTO{Name: m.Name, Visibility: m.Visibility.String(), Source: sourcePath(m.Source)}
		for _, impl := range m.Implementations {
			dto.Implementations = append(dto.Implementations, impl.Path)
		}
		doc.Modules = append(doc.Modules, dto)
	}
	for _, part := range cache.ModulePartitions() {
		doc.ModulePartitions = append(doc.ModulePartitions, PartitionDTO{
			Module:     part.Module.Name,
			Name:       part.Name,
			Visibility: part.Visibility.String(),
			Source:     sourcePath(part.Source),
		})
	}

	for _, tc := range cache.Toolchains() {
		doc.Toolchains = append(doc.Toolchains, *tc)
	}
	for _, cfg := range cache.Configurations() {
		doc.Configurations = append(doc.Configurations, domain.ConfigurationRef{
			Name:      cfg.Name,
			Toolchain: cfg.Toolchain.Name,
		})
	}

	return doc
}

func fileDTO(f *domain.File) FileDTO {
	dto := FileDTO{
		Path:        f.Path,
		LogicalPath: f.LogicalPath,
		Timestamp:   f.Timestamp,
		Hash:        strconv.FormatUint(f.Hash, 16),
	}
	if f.Project != nil {
		dto.Project = f.Project.Name
	}
	for _, t := range f.Tokens {
		dto.Tokens = append(dto.Tokens, encodeToken(t))
	}
	for _, d := range f.Dependencies {
		dto.Dependencies = append(dto.Dependencies, encodeDependency(d))
	}
	return dto
}

func sourcePath(s *domain.Source) string {
	if s == nil {
		return ""
	}
	return s.Path
}

func lookupSource(cache *domain.Cache, path string) *domain.Source {
	if path == "" {
		return nil
	}
	src, _ := cache.SourceIndex().Lookup(path)
	return src
}

func parseVisibility(s string) domain.Visibility {
	if s == domain.Public.String() {
		return domain.Public
	}
	return domain.Private
}
