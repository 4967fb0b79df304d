package buildgraph

import "go.trai.ch/cxxgraph/internal/core/domain"

// CompileTask exposes compileTask for tests.
func CompileTask(cache *domain.Cache, s *domain.Source) domain.BuildTask {
	return compileTask(cache, s)
}
