package buildgraph_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/engine/buildgraph"
	"go.trai.ch/cxxgraph/internal/engine/codescan"
)

func addSource(c *domain.Cache, project, path string, tokens ...domain.Token) *domain.Source {
	s, _ := c.AddSource(c.Project(project), path)
	s.Tokens = tokens
	return s
}

func build(t *testing.T, cache *domain.Cache) *domain.TaskGraph {
	t.Helper()
	codescan.New().Scan(cache)
	g, err := buildgraph.New().Build(cache)
	require.NoError(t, err)
	return g
}

func ids(tasks []domain.BuildTask) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, domain.TaskID(t))
	}
	return out
}

func TestBuild_PlainProjects(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	a := addSource(cache, "lib", "/r/lib/a.cpp")
	b := addSource(cache, "lib", "/r/lib/b.cpp")
	cache.AddHeader(cache.Project("lib"), "/r/lib/lib.hpp")
	main := addSource(cache, "app", "/r/app/main.cpp")
	cache.Project("app").Type = domain.Executable

	g := build(t, cache)

	lib := cache.Task(cache.Project("lib"))
	require.IsType(t, &domain.LinkLibraryTask{}, lib)
	assert.Equal(t, []domain.BuildTask{cache.Task(a), cache.Task(b)}, lib.Inputs())

	app := cache.Task(cache.Project("app"))
	require.IsType(t, &domain.LinkExecutableTask{}, app)
	assert.Equal(t, []domain.BuildTask{cache.Task(main)}, app.Inputs())

	require.IsType(t, &domain.CompileSourceTask{}, cache.Task(a))
	assert.Empty(t, cache.Task(a).Inputs())
	assert.Equal(t, 5, g.Len())
}

func TestBuild_Modules(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	iface := addSource(cache, "m", "/r/m/m.cppm",
		domain.ModuleToken{Name: "m", Exported: true},
		domain.ImportModulePartitionToken{Name: "part", Exported: true},
	)
	part := addSource(cache, "m", "/r/m/part.cppm", domain.ModulePartitionToken{Mod: "m", Name: "part", Exported: true})
	impl := addSource(cache, "m", "/r/m/impl.cpp", domain.ModuleToken{Name: "m"})
	main := addSource(cache, "app", "/r/app/main.cpp", domain.ImportModuleToken{Name: "m"})
	cache.Project("app").Type = domain.Executable

	g := build(t, cache)

	ifaceTask := cache.Task(iface)
	partTask := cache.Task(part)
	implTask := cache.Task(impl)
	mainTask := cache.Task(main)
	require.IsType(t, &domain.CompileModuleInterfaceTask{}, ifaceTask)
	require.IsType(t, &domain.CompileModulePartitionTask{}, partTask)
	require.IsType(t, &domain.CompileSourceTask{}, implTask)

	moduleLink := cache.Task(cache.CppModule("m"))
	require.IsType(t, &domain.LinkModuleLibraryTask{}, moduleLink)
	assert.Equal(t, []domain.BuildTask{ifaceTask, partTask, implTask}, moduleLink.Inputs())

	assert.Equal(t, []domain.BuildTask{partTask}, ifaceTask.Inputs())
	assert.Equal(t, []domain.BuildTask{ifaceTask}, implTask.Inputs())
	assert.Equal(t, []domain.BuildTask{ifaceTask}, mainTask.Inputs())

	appLink := cache.Task(cache.Project("app"))
	assert.Equal(t, []domain.BuildTask{mainTask, moduleLink}, appLink.Inputs())

	assert.Nil(t, cache.Task(cache.Project("m")), "a project of module units links nothing itself")
	assert.Equal(t, 6, g.Len())
}

func TestBuild_ExactlyOneInterfaceCompileTask(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	iface := addSource(cache, "m", "/r/m/m.cppm", domain.ModuleToken{Name: "m", Exported: true})
	addSource(cache, "a", "/r/a/a.cpp", domain.ImportModuleToken{Name: "m"})
	addSource(cache, "b", "/r/b/b.cpp", domain.ImportModuleToken{Name: "m"})

	build(t, cache)

	first := buildgraph.CompileTask(cache, iface)
	again := buildgraph.CompileTask(cache, iface)
	assert.Same(t, first, again)

	interfaces := slices.DeleteFunc(slices.Clone(cache.Tasks()), func(t domain.BuildTask) bool {
		return t.Kind() != domain.KindCompileModuleInterface
	})
	assert.Len(t, interfaces, 1)

	moduleLink := cache.Task(cache.CppModule("m"))
	count := 0
	for _, in := range moduleLink.Inputs() {
		if in == first {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuild_RebuildReplacesTasks(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	addSource(cache, "lib", "/r/lib/a.cpp")

	first := build(t, cache)
	second := build(t, cache)

	assert.Equal(t, first.Len(), second.Len())
	assert.Len(t, cache.Tasks(), 2)
}

func TestBuild_ExecutionOrder(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	addSource(cache, "app", "/r/app/main.cpp", domain.ImportModuleToken{Name: "m"})
	addSource(cache, "m", "/r/m/m.cppm", domain.ModuleToken{Name: "m", Exported: true})

	g := build(t, cache)

	order := ids(slices.Collect(g.Walk()))
	assert.Equal(t, []string{
		"compile-interface:/r/m/m.cppm",
		"compile:/r/app/main.cpp",
		"link-module:m",
		"link-library:app",
	}, order)
}

func TestBuild_ImportCycle(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	addSource(cache, "a", "/r/a/a.cppm",
		domain.ModuleToken{Name: "a", Exported: true},
		domain.ImportModuleToken{Name: "b"},
	)
	addSource(cache, "b", "/r/b/b.cppm",
		domain.ModuleToken{Name: "b", Exported: true},
		domain.ImportModuleToken{Name: "a"},
	)

	codescan.New().Scan(cache)
	_, err := buildgraph.New().Build(cache)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestBuild_UnresolvedImportsAreIgnored(t *testing.T) {
	cache := domain.NewCache(domain.DefaultSettings())
	main := addSource(cache, "app", "/r/app/main.cpp",
		domain.ImportModuleToken{Name: "absent"},
		domain.ImportModulePartitionToken{Name: "nowhere"},
		domain.IncludeLocalToken{Name: "missing.hpp"},
	)

	build(t, cache)

	assert.Empty(t, cache.Task(main).Inputs())
}
