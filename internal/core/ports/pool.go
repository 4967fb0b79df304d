package ports

import "time"

// WorkerPool runs independent jobs on a bounded number of goroutines.
//
//go:generate go run go.uber.org/mock/mockgen -source=pool.go -destination=mocks/mock_pool.go -package=mocks
type WorkerPool interface {
	// SetLimit bounds the number of concurrently running jobs. A limit of
	// zero or less selects the number of CPUs. It must not be called while
	// jobs are in flight.
	SetLimit(n int)
	// Go submits a job without blocking; the job waits for a free worker.
	Go(job func() error)
	// Wait blocks until every submitted job has returned or timeout elapses.
	// It returns the first job error, or domain.ErrScanTimeout.
	// The pool is reusable after Wait returns.
	Wait(timeout time.Duration) error
}
