// Package watcher implements file system watching for `cxxgraph watch`.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// batchBuffer bounds the batches waiting for the consumer. While one batch is
// pending, dropping later ones loses nothing: every batch triggers a full rescan.
const batchBuffer = 1

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	opts      ports.WatchOptions
	debouncer *Debouncer
	logger    ports.Logger

	mu     sync.Mutex
	closed bool
	events chan []ports.Change
}

// NewWatcher creates a new file system watcher. No watches are held until
// Start is called.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{
		logger: logger,
		events: make(chan []ports.Change, batchBuffer),
	}
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string, opts ports.WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounceWindow
	}
	info, err := os.Stat(root)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrScanRootNotFound, err), "root", root)
	}
	if !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrScanRootNotFound, "not a directory"), "root", root)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsWatcher
	w.opts = opts
	w.debouncer = NewDebouncer(opts.Debounce, w.publish)

	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			_ = w.fsWatcher.Close()
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced change batches.
func (w *Watcher) Events() iter.Seq[[]ports.Change] {
	return func(yield func([]ports.Change) bool) {
		for batch := range w.events {
			if !yield(batch) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields every directory that
// is not pruned. The root itself is always yielded.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable directories
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && w.shouldSkip(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) shouldSkip(name string) bool {
	return w.opts.Prune != nil && w.opts.Prune(name)
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher: file system error: " + err.Error())
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	change, ok := convertEvent(event)
	if !ok {
		return
	}

	if change.Op == ports.ChangeCreated {
		if info, err := os.Stat(change.Path); err == nil && info.IsDir() {
			if w.shouldSkip(info.Name()) {
				return
			}
			for dir := range w.watchRecursively(change.Path) {
				_ = w.fsWatcher.Add(dir)
			}
			w.debouncer.Add(change)
			return
		}
	}

	if w.relevant(change) {
		w.debouncer.Add(change)
	}
}

// relevant applies the Relevant filter. Removals of extensionless paths are
// always kept, since they may be directories that held relevant files.
func (w *Watcher) relevant(change ports.Change) bool {
	if w.opts.Relevant == nil || w.opts.Relevant(change.Path) {
		return true
	}
	gone := change.Op == ports.ChangeRemoved || change.Op == ports.ChangeRenamed
	return gone && filepath.Ext(change.Path) == ""
}

func (w *Watcher) publish(batch []ports.Change) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.events <- batch:
	default:
	}
}

func (w *Watcher) close() {
	w.debouncer.Flush()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	close(w.events)
}

// convertEvent converts an fsnotify event to a ports.Change.
func convertEvent(event fsnotify.Event) (ports.Change, bool) {
	switch {
	case event.Has(fsnotify.Create):
		return ports.Change{Path: event.Name, Op: ports.ChangeCreated}, true
	case event.Has(fsnotify.Write):
		return ports.Change{Path: event.Name, Op: ports.ChangeModified}, true
	case event.Has(fsnotify.Remove):
		return ports.Change{Path: event.Name, Op: ports.ChangeRemoved}, true
	case event.Has(fsnotify.Rename):
		return ports.Change{Path: event.Name, Op: ports.ChangeRenamed}, true
	default:
		return ports.Change{}, false
	}
}
