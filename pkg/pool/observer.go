package pool

import (
	"time"
)

// Observer receives pool lifecycle notifications. Implementations must be
// safe for concurrent use; callbacks fire from producer and worker
// goroutines. The pool itself never blocks on an observer, so callbacks
// should return quickly.
//
// The prometheus observability package provides an implementation; the
// default is a no-op so the core carries no metrics dependency.
type Observer interface {
	// JobEnqueued fires after a job has been accepted by Execute.
	JobEnqueued()

	// JobStarted fires when a worker picks the job up.
	JobStarted()

	// JobCompleted fires when a job returns normally.
	JobCompleted(d time.Duration)

	// JobPanicked fires when a job panics. JobCompleted is not fired for
	// that job.
	JobPanicked()

	// WorkerStarted fires once per worker at pool construction.
	WorkerStarted()

	// WorkerExited fires when a worker's loop ends, whether through
	// teardown or through a panicking job retiring it.
	WorkerExited()
}

type nopObserver struct{}

func (nopObserver) JobEnqueued()               {}
func (nopObserver) JobStarted()                {}
func (nopObserver) JobCompleted(time.Duration) {}
func (nopObserver) JobPanicked()               {}
func (nopObserver) WorkerStarted()             {}
func (nopObserver) WorkerExited()              {}
