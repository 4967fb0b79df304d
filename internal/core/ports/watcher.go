package ports

import (
	"context"
	"iter"
	"time"
)

// ChangeOp classifies a filesystem change.
type ChangeOp uint8

const (
	ChangeCreated ChangeOp = iota
	ChangeModified
	ChangeRemoved
	ChangeRenamed
)

func (op ChangeOp) String() string {
	switch op {
	case ChangeCreated:
		return "created"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	case ChangeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Change is a single filesystem change below the watched root.
type Change struct {
	Path string
	Op   ChangeOp
}

// WatchOptions narrows what a Watcher reports.
type WatchOptions struct {
	// Prune reports directories that are neither watched nor descended into.
	Prune func(dir string) bool
	// Relevant reports files whose changes are reported. Nil reports every file.
	Relevant func(path string) bool
	// Debounce is the quiet period after which pending changes are emitted.
	Debounce time.Duration
}

// Watcher reports changes to a directory tree until stopped.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root and every directory below it that is not pruned.
	Start(ctx context.Context, root string, opts WatchOptions) error
	// Stop releases the underlying watches. Events terminates afterwards.
	Stop() error
	// Events yields batches of coalesced changes, ordered by path, until Stop
	// is called or the start context ends.
	Events() iter.Seq[[]Change]
}
