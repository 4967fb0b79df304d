// Package scanner discovers the sources and headers of a C++ tree, groups them
// into projects and tokenizes the files that changed since the last scan.
package scanner

import (
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/cxxgraph/internal/engine/tokenizer"
	"go.trai.ch/zerr"
)

// Result summarizes one scan.
type Result struct {
	// Files is the number of sources and headers found below the root.
	Files int
	// Tokenized is the number of files whose tokens were replaced.
	Tokenized int
	// Skipped is the number of files left untouched, either because their
	// modification time is unchanged or because their content digest is.
	Skipped int
	// Removed is the number of cached files that no longer exist.
	Removed int
}

// Scanner walks a scan root and populates a cache.
type Scanner struct {
	fs     ports.FileSystem
	walker ports.Walker
	hasher ports.Hasher
	pool   ports.WorkerPool
}

// New creates a new Scanner.
func New(fsys ports.FileSystem, walker ports.Walker, hasher ports.Hasher, pool ports.WorkerPool) *Scanner {
	return &Scanner{
		fs:     fsys,
		walker: walker,
		hasher: hasher,
		pool:   pool,
	}
}

// placement is where a file lands in the project tree.
type placement struct {
	project     string
	logicalPath string
	test        bool
}

// Scan walks root, registers every source and header in cache and tokenizes
// new and changed files on the worker pool. Files cached under a path that the
// walk no longer yields are removed.
func (s *Scanner) Scan(root string, cache *domain.Cache) (Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Result{}, zerr.With(errors.Join(domain.ErrScanRootNotFound, err), "root", root)
	}
	root = abs
	info, err := s.fs.Stat(root)
	if err != nil {
		return Result{}, zerr.With(errors.Join(domain.ErrScanRootNotFound, err), "root", root)
	}
	if !info.IsDir() {
		return Result{}, zerr.With(zerr.Wrap(domain.ErrScanRootNotFound, "not a directory"), "root", root)
	}

	settings := &cache.Settings
	rootName := filepath.Base(root)

	var res Result
	var tokenized, unchanged atomic.Int64
	seen := make(map[string]struct{})
	executables := make(map[string]bool)

	s.pool.SetLimit(settings.Workers)

	for path := range s.walker.WalkFiles(root, settings.IsIgnored) {
		name := filepath.Base(path)
		isSource := settings.IsSource(name)
		if !isSource && !settings.IsHeader(name) {
			continue
		}

		place := placeFile(root, rootName, path, settings)
		project := cache.Project(place.project)
		if place.test || (isSource && settings.IsExecutable(name)) {
			executables[project.Name] = true
		} else if _, ok := executables[project.Name]; !ok {
			executables[project.Name] = false
		}

		var file *domain.File
		var created bool
		if isSource {
			src, isNew := cache.AddSource(project, path)
			file, created = &src.File, isNew
		} else {
			hdr, isNew := cache.AddHeader(project, path)
			file, created = &hdr.File, isNew
		}
		file.LogicalPath = place.logicalPath
		seen[path] = struct{}{}

		stat, err := s.fs.Stat(path)
		if err != nil {
			// Jobs already submitted must not outlive the scan.
			_ = s.pool.Wait(settings.ScanTimeout)
			return Result{}, zerr.With(errors.Join(domain.ErrFileStatFailed, err), "path", path)
		}
		mtime := stat.ModTime().UnixNano()
		if !created && file.Timestamp == mtime {
			unchanged.Add(1)
			continue
		}

		s.pool.Go(func() error {
			changed, err := s.refresh(file, mtime, created)
			if err != nil {
				return err
			}
			if changed {
				tokenized.Add(1)
			} else {
				unchanged.Add(1)
			}
			return nil
		})
	}

	if err := s.pool.Wait(settings.ScanTimeout); err != nil {
		return Result{}, err
	}

	for name, exe := range executables {
		if p, ok := cache.LookupProject(name); ok {
			p.Type = projectType(exe)
		}
	}

	res.Removed = s.prune(cache, seen)
	res.Files = len(seen)
	res.Tokenized = int(tokenized.Load())
	res.Skipped = int(unchanged.Load())
	return res, nil
}

// refresh re-reads a file whose modification time changed. It reports whether
// the tokens were replaced; identical content only updates the timestamp.
// It runs on the worker pool and touches nothing but f.
func (s *Scanner) refresh(f *domain.File, mtime int64, created bool) (bool, error) {
	content, err := s.fs.ReadFile(f.Path)
	if err != nil {
		return false, zerr.With(errors.Join(domain.ErrFileReadFailed, err), "path", f.Path)
	}

	sum := s.hasher.HashContent(content)
	if !created && f.Hash != 0 && f.Hash == sum {
		f.Timestamp = mtime
		return false, nil
	}

	f.Tokens = tokenizer.Tokenize(content)
	f.Dependencies = nil
	f.Hash = sum
	f.Timestamp = mtime
	return true, nil
}

// prune removes cached files the walk did not yield.
func (s *Scanner) prune(cache *domain.Cache, seen map[string]struct{}) int {
	var stale []string
	for _, f := range cache.Files() {
		if _, ok := seen[f.Path]; !ok {
			stale = append(stale, f.Path)
		}
	}
	removed := 0
	for _, path := range stale {
		if cache.RemoveFile(path) {
			removed++
		}
	}
	return removed
}

func projectType(executable bool) domain.ProjectType {
	if executable {
		return domain.Executable
	}
	return domain.Library
}

// placeFile computes the project of a file from its directory segments.
// Segments are taken from the root outward up to the first squash directory;
// skip directories are left out of the name. A test directory among the
// naming segments marks the project as executable. The logical path drops
// every squash and skip directory.
func placeFile(root, rootName, path string, settings *domain.Settings) placement {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	dirs, base := segments[:len(segments)-1], segments[len(segments)-1]

	var p placement
	var name []string
	squashed := false
	for _, dir := range dirs {
		if settings.IsSquashed(dir) {
			squashed = true
		}
		if squashed {
			continue
		}
		if settings.IsTest(dir) {
			p.test = true
		}
		if !settings.IsSkipped(dir) {
			name = append(name, dir)
		}
	}
	p.project = strings.Join(name, settings.Separator())
	if p.project == "" {
		p.project = rootName
	}

	logical := make([]string, 0, len(segments))
	for _, dir := range dirs {
		if settings.IsSquashed(dir) || settings.IsSkipped(dir) {
			continue
		}
		logical = append(logical, dir)
	}
	p.logicalPath = strings.Join(append(logical, base), "/")
	return p
}
