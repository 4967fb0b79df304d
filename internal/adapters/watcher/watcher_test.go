package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/internal/adapters/watcher"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

const eventTimeout = 5 * time.Second

func startWatcher(t *testing.T, root string) (*watcher.Watcher, <-chan []ports.Change) {
	t.Helper()

	w := watcher.NewWatcher(nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts := ports.WatchOptions{
		Prune:    func(dir string) bool { return dir == "build" },
		Relevant: func(path string) bool { return filepath.Ext(path) == ".cpp" },
		Debounce: 20 * time.Millisecond,
	}
	require.NoError(t, w.Start(ctx, root, opts))
	t.Cleanup(func() { _ = w.Stop() })

	batches := make(chan []ports.Change, 16)
	go func() {
		defer close(batches)
		for batch := range w.Events() {
			batches <- batch
		}
	}()
	return w, batches
}

func nextBatch(t *testing.T, batches <-chan []ports.Change) []ports.Change {
	t.Helper()
	select {
	case batch, ok := <-batches:
		require.True(t, ok, "events closed")
		return batch
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestWatcher_ReportsRelevantChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o750))

	_, batches := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "gen.cpp"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.cpp"), []byte("x"), 0o600))

	batch := nextBatch(t, batches)
	assert.Equal(t, []ports.Change{{Path: filepath.Join(root, "a.cpp"), Op: ports.ChangeCreated}}, batch)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	_, batches := startWatcher(t, root)

	dir := filepath.Join(root, "lib")
	require.NoError(t, os.Mkdir(dir, 0o750))
	batch := nextBatch(t, batches)
	assert.Contains(t, batch, ports.Change{Path: dir, Op: ports.ChangeCreated})

	file := filepath.Join(dir, "lib.cpp")
	require.Eventually(t, func() bool {
		if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
			return false
		}
		select {
		case batch := <-batches:
			for _, c := range batch {
				if c.Path == file {
					return true
				}
			}
		case <-time.After(200 * time.Millisecond):
		}
		return false
	}, eventTimeout, 10*time.Millisecond)
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	assert.NoError(t, watcher.NewWatcher(nil).Stop())
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	w := watcher.NewWatcher(nil)
	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"), ports.WatchOptions{})
	assert.ErrorIs(t, err, domain.ErrScanRootNotFound)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	root := t.TempDir()
	w, batches := startWatcher(t, root)

	require.NoError(t, w.Stop())

	select {
	case _, ok := <-batches:
		assert.False(t, ok)
	case <-time.After(eventTimeout):
		t.Fatal("events not closed after Stop")
	}
}
