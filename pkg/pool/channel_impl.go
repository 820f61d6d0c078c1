package pool

import (
	"sync"
)

// unboundedChannel implements JobChannel with a mutex-guarded FIFO slice
// and a condition variable for blocking receives. A plain buffered chan
// would impose a fixed capacity on Send; the pool's contract is that
// Execute never blocks the producer.
type unboundedChannel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool
}

// NewJobChannel creates an open, empty JobChannel.
func NewJobChannel() JobChannel {
	ch := &unboundedChannel{}
	ch.cond = sync.NewCond(&ch.mu)
	return ch
}

// Send implements JobChannel.
func (ch *unboundedChannel) Send(job Job) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return ErrChannelClosed
	}

	ch.queue = append(ch.queue, job)
	ch.cond.Signal() // wake one blocked receiver
	return nil
}

// Recv implements JobChannel.
func (ch *unboundedChannel) Recv() (Job, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for len(ch.queue) == 0 && !ch.closed {
		ch.cond.Wait()
	}

	// Closed is only reported once the queue has drained.
	if len(ch.queue) == 0 {
		return nil, false
	}

	job := ch.queue[0]
	ch.queue[0] = nil // release the reference for the GC
	ch.queue = ch.queue[1:]
	return job, true
}

// Close implements JobChannel.
func (ch *unboundedChannel) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return
	}
	ch.closed = true
	ch.cond.Broadcast() // every blocked receiver must observe closure
}

// Len implements JobChannel.
func (ch *unboundedChannel) Len() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.queue)
}
