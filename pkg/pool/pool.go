// Package pool provides a fixed-capacity worker pool: N long-lived worker
// goroutines draining a single unbounded job channel, with deterministic,
// blocking shutdown. Close guarantees that every queued and in-flight job
// has completed before it returns, without leaking goroutines.
//
// Concurrency comes from having multiple workers, not from multiplexing
// within one: a worker never picks up a second job until the previous one
// has returned.
package pool

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	// QueuedJobs is the number of jobs waiting for a worker.
	QueuedJobs int

	// LiveWorkers is the number of workers still running their loop.
	// It starts at Capacity and drops when a panicking job retires a
	// worker, or when teardown ends the loops.
	LiveWorkers int

	// SubmittedJobs counts Execute calls accepted so far.
	SubmittedJobs int64

	// CompletedJobs counts jobs that returned normally.
	CompletedJobs int64

	// PanickedJobs counts jobs that panicked, each retiring one worker.
	PanickedJobs int64
}

// Pool dispatches jobs across a fixed set of workers.
//
// Lifecycle: Active from New until Close is first called, TearingDown
// while workers drain, Terminated once every worker has been joined.
// Execute is valid only while Active; calling it later is a contract
// violation and panics rather than silently dropping work.
type Pool interface {
	// Execute enqueues job for execution by some worker and returns
	// immediately. The queue is unbounded: Execute never blocks, and
	// sustained submission faster than the drain rate grows memory
	// rather than applying backpressure.
	//
	// Panics if job is nil or if teardown has begun.
	Execute(job Job)

	// Go submits a plain closure; shorthand for Execute(JobFunc(f)).
	Go(f func())

	// Capacity returns the worker count fixed at construction.
	Capacity() int

	// Stats returns a snapshot of pool activity.
	Stats() Stats

	// Close tears the pool down: no further jobs are accepted, queued
	// jobs are drained, and every worker is joined in spawn order. It
	// blocks until all workers have exited; there is no timeout.
	// Idempotent: a second call returns nil without re-joining.
	Close() error
}

// Option configures a Pool at construction.
type Option func(*defaultPool)

// WithLogger replaces the stdlib logger used for worker panic reports.
func WithLogger(l Logger) Option {
	return func(p *defaultPool) {
		p.logger = l
	}
}

// WithObserver installs an instrumentation hook (see Observer).
func WithObserver(o Observer) Option {
	return func(p *defaultPool) {
		p.observer = o
	}
}
