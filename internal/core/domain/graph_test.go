package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

func newLibrary(name string) *domain.LinkLibraryTask {
	return &domain.LinkLibraryTask{Project: &domain.Project{Name: name}}
}

func TestTaskGraph_AddTask(t *testing.T) {
	g := domain.NewTaskGraph()
	task := newLibrary("core")

	require.NoError(t, g.AddTask(task))
	require.NoError(t, g.AddTask(task), "re-adding the same task is a no-op")
	assert.Equal(t, 1, g.Len())

	err := g.AddTask(newLibrary("core"))
	require.Error(t, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "link-library:core", zErr.Metadata()["task"])
}

func TestTaskGraph_Validate_Cycle(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*domain.TaskGraph)
		cycle string
	}{
		{
			name: "Self Cycle",
			setup: func(g *domain.TaskGraph) {
				a := newLibrary("a")
				a.AddInput(a)
				_ = g.AddTask(a)
			},
			cycle: "link-library:a -> link-library:a",
		},
		{
			name: "Three Node Cycle",
			setup: func(g *domain.TaskGraph) {
				a, b, c := newLibrary("a"), newLibrary("b"), newLibrary("c")
				a.AddInput(b)
				b.AddInput(c)
				c.AddInput(a)
				_ = g.AddTask(a)
				_ = g.AddTask(b)
				_ = g.AddTask(c)
			},
			cycle: "link-library:a -> link-library:b -> link-library:c -> link-library:a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewTaskGraph()
			tt.setup(g)

			err := g.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCycleDetected)
			zErr, ok := err.(*zerr.Error)
			require.True(t, ok)
			assert.Equal(t, tt.cycle, zErr.Metadata()["cycle"])
		})
	}
}

func TestTaskGraph_Validate_MissingInput(t *testing.T) {
	g := domain.NewTaskGraph()
	a := newLibrary("a")
	a.AddInput(newLibrary("ghost"))
	require.NoError(t, g.AddTask(a))

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingTask)
}

func TestTaskGraph_Walk(t *testing.T) {
	g := domain.NewTaskGraph()
	src := &domain.Source{File: domain.File{Path: "/r/app/main.cpp"}}
	compile := &domain.CompileSourceTask{Source: src}
	lib := newLibrary("lib")
	app := &domain.LinkExecutableTask{Project: &domain.Project{Name: "app"}}
	app.AddInput(compile)
	app.AddInput(lib)

	require.NoError(t, g.AddTask(app))
	require.NoError(t, g.AddTask(compile))
	require.NoError(t, g.AddTask(lib))
	require.NoError(t, g.Validate())

	var executed []string
	for task := range g.Walk() {
		executed = append(executed, domain.TaskID(task))
	}
	assert.Equal(t, []string{
		"compile:/r/app/main.cpp",
		"link-library:lib",
		"link-executable:app",
	}, executed)
}
