// Package pool provides a bounded worker pool backed by errgroup.
package pool

import (
	"runtime"
	"sync"
	"time"

	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.WorkerPool = (*Pool)(nil)

// Pool runs jobs on at most limit goroutines. Submitting never blocks: jobs
// wait for a free worker on their own goroutine.
type Pool struct {
	mu    sync.Mutex
	batch *batch
	limit int
}

// batch is the set of jobs submitted since the last Wait.
type batch struct {
	group   *errgroup.Group
	pending sync.WaitGroup
}

// New creates a pool. A workers value of zero or less selects runtime.NumCPU.
func New(workers int) *Pool {
	p := &Pool{}
	p.SetLimit(workers)
	return p
}

// SetLimit replaces the concurrency bound for subsequent jobs.
func (p *Pool) SetLimit(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limit = n
	p.batch = p.newBatch()
}

// Limit returns the current concurrency bound.
func (p *Pool) Limit() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limit
}

// Go submits a job and returns immediately.
func (p *Pool) Go(job func() error) {
	p.mu.Lock()
	b := p.batch
	b.pending.Add(1)
	p.mu.Unlock()

	go b.group.Go(func() error {
		defer b.pending.Done()
		return job()
	})
}

// Wait blocks until all submitted jobs have finished and returns the first
// error any of them produced. A positive timeout bounds the wait; when it
// elapses, domain.ErrScanTimeout is returned and the outstanding jobs,
// running or still queued, are abandoned. Either way the pool starts over
// with a fresh batch.
func (p *Pool) Wait(timeout time.Duration) error {
	p.mu.Lock()
	b := p.batch
	p.batch = p.newBatch()
	p.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		b.pending.Wait()
		done <- b.group.Wait()
	}()

	if timeout <= 0 {
		return <-done
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return zerr.With(zerr.Wrap(domain.ErrScanTimeout, "scan aborted"), "timeout", timeout.String())
	}
}

func (p *Pool) newBatch() *batch {
	b := &batch{group: new(errgroup.Group)}
	b.group.SetLimit(p.limit)
	return b
}
