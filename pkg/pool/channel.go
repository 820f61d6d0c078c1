package pool

import (
	"errors"
)

// ErrChannelClosed is returned when trying to send on a closed job channel.
var ErrChannelClosed = errors.New("job channel is closed")

// JobChannel abstracts the producer/worker handoff queue.
// Hides the queue representation and condition signalling from pool code.
//
// Delivery contract: a job sent while the channel is open reaches exactly
// one receiver, is never duplicated, and is never dropped. Closing the
// channel does not discard queued jobs; every job sent before Close is
// still delivered before receivers observe the closed state.
type JobChannel interface {
	// Send enqueues a job. It never blocks: the queue is logically
	// unbounded, so a slow consumer side grows the queue instead of
	// stalling the producer.
	// Returns ErrChannelClosed if the channel has been closed.
	Send(job Job) error

	// Recv blocks until a job is available or the channel is closed and
	// drained. Returns (job, true) with the job removed from the queue,
	// or (nil, false) once the channel is closed and empty.
	// This is the sole suspension point for idle workers.
	Recv() (Job, bool)

	// Close marks the channel closed and wakes all blocked receivers.
	// Idempotent. Jobs already queued are still delivered.
	Close()

	// Len returns the current queue depth.
	Len() int
}
