package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// FileEntity is satisfied by *Source and *Header.
type FileEntity interface {
	*Source | *Header
	Base() *File
}

// FileIndex looks files up by exact path and by basename.
// Several files may share a basename; Find disambiguates between them.
type FileIndex[T FileEntity] struct {
	byPath map[string]T
	byName map[InternedString][]T
}

// NewFileIndex creates an empty index.
func NewFileIndex[T FileEntity]() *FileIndex[T] {
	return &FileIndex[T]{
		byPath: make(map[string]T),
		byName: make(map[InternedString][]T),
	}
}

// Add indexes e under its path and basename.
func (ix *FileIndex[T]) Add(e T) {
	f := e.Base()
	ix.byPath[f.Path] = e
	key := NewInternedString(filepath.Base(f.Path))
	ix.byName[key] = append(ix.byName[key], e)
}

// Remove drops e from the index.
func (ix *FileIndex[T]) Remove(e T) {
	f := e.Base()
	delete(ix.byPath, f.Path)
	key := NewInternedString(filepath.Base(f.Path))
	list := slices.DeleteFunc(ix.byName[key], func(c T) bool { return c == e })
	if len(list) == 0 {
		delete(ix.byName, key)
		return
	}
	ix.byName[key] = list
}

// Lookup returns the entity with the exact canonical path.
func (ix *FileIndex[T]) Lookup(path string) (T, bool) {
	e, ok := ix.byPath[path]
	return e, ok
}

// Len returns the number of indexed files.
func (ix *FileIndex[T]) Len() int {
	return len(ix.byPath)
}

// Find resolves a name as written in an include or import.
// A candidate reachable as hint/name wins; otherwise the first candidate, in
// insertion order, whose path or logical path ends with the segments of name.
// It returns nil when nothing matches.
func (ix *FileIndex[T]) Find(name, hint string) T {
	var zero T
	if name == "" {
		return zero
	}
	candidates := ix.byName[NewInternedString(baseName(name))]
	if len(candidates) == 0 {
		return zero
	}

	if hint != "" {
		want := filepath.Clean(filepath.Join(hint, filepath.FromSlash(name)))
		for _, c := range candidates {
			if c.Base().Path == want {
				return c
			}
		}
	}

	for _, c := range candidates {
		f := c.Base()
		if IsSame(f.Path, name) || (f.LogicalPath != "" && IsSame(f.LogicalPath, name)) {
			return c
		}
	}
	return zero
}

// IsSame reports whether candidate ends with query, compared segment by
// segment from the end until query is exhausted.
func IsSame(candidate, query string) bool {
	c := splitSegments(candidate)
	q := splitSegments(query)
	if len(q) == 0 || len(q) > len(c) {
		return false
	}
	for i := 1; i <= len(q); i++ {
		if c[len(c)-i] != q[len(q)-i] {
			return false
		}
	}
	return true
}

func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
}

func baseName(name string) string {
	segs := splitSegments(name)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
