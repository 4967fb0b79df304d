package scanner

import "go.trai.ch/cxxgraph/internal/core/domain"

// PlaceFile exposes placeFile for tests.
func PlaceFile(root, rootName, path string, settings *domain.Settings) (project, logicalPath string, test bool) {
	p := placeFile(root, rootName, path, settings)
	return p.project, p.logicalPath, p.test
}
