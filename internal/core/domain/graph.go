// Package domain contains the entities of a scanned C++ tree, the typed tokens,
// dependencies and build tasks derived from it, and the cache that owns them.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// TaskGraph orders build tasks so every task follows its inputs.
type TaskGraph struct {
	tasks          map[InternedString]BuildTask
	order          []InternedString
	executionOrder []BuildTask
}

// NewTaskGraph creates a new empty TaskGraph.
func NewTaskGraph() *TaskGraph {
	return &TaskGraph{
		tasks: make(map[InternedString]BuildTask),
	}
}

// AddTask adds a task to the graph. Adding the same task twice is a no-op.
// It returns an error if a different task with the same identity already exists.
func (g *TaskGraph) AddTask(t BuildTask) error {
	id := NewInternedString(TaskID(t))
	if existing, ok := g.tasks[id]; ok {
		if existing == t {
			return nil
		}
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "invalid task graph"), "task", id.String())
	}
	g.tasks[id] = t
	g.order = append(g.order, id)
	return nil
}

// Len returns the number of tasks in the graph.
func (g *TaskGraph) Len() int {
	return len(g.tasks)
}

// Validate checks that every input is part of the graph and that there are no
// cycles. It populates the execution order if successful.
func (g *TaskGraph) Validate() error {
	g.executionOrder = make([]BuildTask, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task := g.tasks[u]
		for _, in := range task.Inputs() {
			dep := NewInternedString(TaskID(in))
			if _, exists := g.tasks[dep]; !exists {
				return zerr.With(zerr.With(zerr.Wrap(ErrMissingTask, "invalid task graph"), "task", u.String()), "input", dep.String())
			}
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, task)
		return nil
	}

	// Insertion order keeps the execution order stable across runs.
	for _, id := range g.order {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *TaskGraph) buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid task graph"), "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *TaskGraph) Walk() iter.Seq[BuildTask] {
	return func(yield func(BuildTask) bool) {
		for _, t := range g.executionOrder {
			if !yield(t) {
				return
			}
		}
	}
}
