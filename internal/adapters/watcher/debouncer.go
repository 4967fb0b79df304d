package watcher

import (
	"slices"
	"strings"
	"sync"
	"time"
	"unique"

	"go.trai.ch/cxxgraph/internal/core/ports"
)

// Debouncer coalesces rapid file system events into batches.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.ChangeOp
	timer    *time.Timer
	window   time.Duration
	callback func(changes []ports.Change)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(changes []ports.Change)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.ChangeOp),
		window:   window,
		callback: callback,
	}
}

// Add records a change and restarts the quiet period. A later change to the
// same path replaces the earlier one, except that a file created within the
// window stays created when it is subsequently modified.
func (d *Debouncer) Add(change ports.Change) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handle := unique.Make(change.Path)
	if prev, ok := d.pending[handle]; ok && prev == ports.ChangeCreated && change.Op == ports.ChangeModified {
		change.Op = ports.ChangeCreated
	}
	d.pending[handle] = change.Op

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	changes := d.drain()
	d.mu.Unlock()

	if len(changes) > 0 && d.callback != nil {
		go d.callback(changes)
	}
}

// Flush immediately emits all pending changes and blocks until the callback
// returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	changes := d.drain()
	d.mu.Unlock()

	if len(changes) > 0 && d.callback != nil {
		d.callback(changes)
	}
}

// drain empties the pending set. Callers hold mu.
func (d *Debouncer) drain() []ports.Change {
	if len(d.pending) == 0 {
		return nil
	}
	changes := make([]ports.Change, 0, len(d.pending))
	for handle, op := range d.pending {
		changes = append(changes, ports.Change{Path: handle.Value(), Op: op})
	}
	clear(d.pending)
	slices.SortFunc(changes, func(a, b ports.Change) int {
		return strings.Compare(a.Path, b.Path)
	})
	return changes
}
