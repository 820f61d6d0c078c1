package pool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/threadedio/threaded/pkg/failfast"
)

// poolState tracks the pool lifecycle. There is no stored Constructing
// state: New returns only once the pool is Active.
type poolState int32

const (
	stateActive poolState = iota + 1
	stateTearingDown
	stateTerminated
)

// defaultPool implements Pool.
type defaultPool struct {
	capacity int
	channel  JobChannel
	workers  []*worker
	state    int32      // Atomic poolState
	mu       sync.Mutex // Serializes Close
	logger   Logger
	observer Observer

	// Counters (atomic for thread-safety)
	liveWorkers   int32
	submittedJobs int64
	completedJobs int64
	panickedJobs  int64
}

// New creates a Pool and spawns exactly capacity workers, each blocked on
// the receiving side of a fresh job channel.
//
// Panics if capacity < 1: a pool with zero workers would accept jobs it
// can never run, a silent deadlock waiting to happen.
func New(capacity int, opts ...Option) Pool {
	failfast.If(capacity >= 1, "pool capacity must be at least 1, got %d", capacity)

	p := &defaultPool{
		capacity: capacity,
		channel:  NewJobChannel(),
		logger:   newDefaultLogger(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}

	atomic.StoreInt32(&p.liveWorkers, int32(capacity))
	atomic.StoreInt32(&p.state, int32(stateActive))

	p.workers = make([]*worker, 0, capacity)
	for i := 0; i < capacity; i++ {
		w := newWorker(i)
		p.workers = append(p.workers, w)
		p.observer.WorkerStarted()
		go p.runWorker(w)
	}

	return p
}

// runWorker is the worker loop: block on Recv, run the job to completion,
// loop. The loop ends when the channel reports closure, or when a
// panicking job retires the worker.
func (p *defaultPool) runWorker(w *worker) {
	defer func() {
		atomic.AddInt32(&p.liveWorkers, -1)
		p.observer.WorkerExited()
		close(w.done)
	}()

	for {
		job, ok := p.channel.Recv()
		if !ok {
			return // channel closed and drained
		}
		if !p.runJob(w, job) {
			return // job panicked, retire this worker
		}
	}
}

// runJob executes one job, confining a panic to the worker that ran it.
// Returns false if the job panicked.
//
// A panicking job is not retried or re-queued, and the worker is not
// respawned: effective capacity permanently drops by one. The event is
// logged and counted rather than silently masked.
func (p *defaultPool) runJob(w *worker, job Job) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&p.panickedJobs, 1)
			p.observer.JobPanicked()
			p.logger.Errorf("worker %d (%s): job %q panicked, retiring worker: %v",
				w.index, w.id, jobName(job), r)
			ok = false
		}
	}()

	p.observer.JobStarted()
	start := time.Now()
	job.Run()
	atomic.AddInt64(&p.completedJobs, 1)
	p.observer.JobCompleted(time.Since(start))
	return true
}

// Execute implements Pool.
func (p *defaultPool) Execute(job Job) {
	failfast.NotNil(job, "job")
	failfast.If(poolState(atomic.LoadInt32(&p.state)) == stateActive,
		"execute on a pool whose teardown has begun")

	// The state check above is advisory: Close may flip the state between
	// the check and the send. The channel is closed only after the state
	// change, so a send that loses that race fails loudly here too.
	failfast.Err(p.channel.Send(job))

	atomic.AddInt64(&p.submittedJobs, 1)
	p.observer.JobEnqueued()
}

// Go implements Pool.
func (p *defaultPool) Go(f func()) {
	p.Execute(JobFunc(f))
}

// Capacity implements Pool.
func (p *defaultPool) Capacity() int {
	return p.capacity
}

// Stats implements Pool.
func (p *defaultPool) Stats() Stats {
	return Stats{
		QueuedJobs:    p.channel.Len(),
		LiveWorkers:   int(atomic.LoadInt32(&p.liveWorkers)),
		SubmittedJobs: atomic.LoadInt64(&p.submittedJobs),
		CompletedJobs: atomic.LoadInt64(&p.completedJobs),
		PanickedJobs:  atomic.LoadInt64(&p.panickedJobs),
	}
}

// Close implements Pool.
//
// Teardown order:
//  1. Flip state to TearingDown so Execute rejects new jobs.
//  2. Close the job channel; workers drain what is queued, then observe
//     closure and exit their loops.
//  3. Join every worker in spawn order, blocking until all have exited.
func (p *defaultPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if poolState(atomic.LoadInt32(&p.state)) != stateActive {
		return nil // already torn down
	}
	atomic.StoreInt32(&p.state, int32(stateTearingDown))

	p.channel.Close()
	for _, w := range p.workers {
		w.join()
	}

	atomic.StoreInt32(&p.state, int32(stateTerminated))
	return nil
}
