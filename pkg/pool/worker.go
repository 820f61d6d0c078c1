package pool

import (
	"time"

	"github.com/google/uuid"
)

// worker is the identity record for one pool goroutine: an ordinal index,
// a uuid, the spawn time, and a done channel that stands in for a thread
// join handle. The loop itself runs in runWorker on defaultPool.
//
// Workers are owned exclusively by the pool: created at construction,
// joined exactly once during Close, never addressable by callers.
type worker struct {
	index   int
	id      uuid.UUID
	created time.Time
	done    chan struct{}
}

func newWorker(index int) *worker {
	return &worker{
		index:   index,
		id:      uuid.New(),
		created: time.Now(),
		done:    make(chan struct{}),
	}
}

// join blocks until the worker's loop has returned.
func (w *worker) join() {
	<-w.done
}
