package pool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testLogger captures error output so panic-confinement tests stay quiet
// and can assert on what was reported.
type testLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *testLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func (l *testLogger) Warnf(format string, args ...interface{}) {}

func (l *testLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func TestNew_ZeroCapacityPanics(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) should panic", capacity)
				}
			}()
			New(capacity)
		}()
	}
}

func TestPool_Capacity(t *testing.T) {
	p := New(3)

	if got := p.Capacity(); got != 3 {
		t.Errorf("Capacity() = %d, want 3", got)
	}
	if got := p.Stats().LiveWorkers; got != 3 {
		t.Errorf("Stats().LiveWorkers = %d, want 3", got)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Capacity is fixed at construction and survives teardown.
	if got := p.Capacity(); got != 3 {
		t.Errorf("Capacity() after Close = %d, want 3", got)
	}
}

func TestPool_ExecutesAllJobsExactlyOnce(t *testing.T) {
	const jobs = 100
	p := New(4)

	var mu sync.Mutex
	seen := make(map[int]int)

	for i := 0; i < jobs; i++ {
		i := i
		p.Execute(JobFunc(func() {
			mu.Lock()
			seen[i]++
			mu.Unlock()
		}))
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if len(seen) != jobs {
		t.Errorf("executed %d distinct jobs, want %d", len(seen), jobs)
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("job %d ran %d times, want 1", i, n)
		}
	}
}

func TestPool_CloseWaitsForInFlightJob(t *testing.T) {
	p := New(1)

	var flag int32
	p.Execute(JobFunc(func() {
		time.Sleep(50 * time.Millisecond)
		atomic.StoreInt32(&flag, 1)
	}))

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if atomic.LoadInt32(&flag) != 1 {
		t.Error("Close() returned before the in-flight job finished")
	}
}

func TestPool_RunsJobsInParallel(t *testing.T) {
	p := New(2)

	start := time.Now()
	for i := 0; i < 4; i++ {
		p.Execute(JobFunc(func() {
			time.Sleep(100 * time.Millisecond)
		}))
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	elapsed := time.Since(start)

	// Two workers over four 100ms jobs: ~200ms when parallel, ~400ms when
	// serialized. The bound leaves headroom for scheduler jitter.
	if elapsed >= 350*time.Millisecond {
		t.Errorf("submit+Close took %v, want well under 350ms", elapsed)
	}
	if elapsed < 200*time.Millisecond {
		t.Errorf("submit+Close took %v, want at least 200ms (jobs must have run)", elapsed)
	}
}

func TestPool_AllLabelsDelivered(t *testing.T) {
	p := New(2)

	var mu sync.Mutex
	var order []string
	for _, label := range []string{"A", "B", "C"} {
		label := label
		p.Execute(JobFunc(func() {
			mu.Lock()
			order = append(order, label)
			mu.Unlock()
		}))
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := make(map[string]bool, len(order))
	for _, label := range order {
		got[label] = true
	}
	for _, want := range []string{"A", "B", "C"} {
		if !got[want] {
			t.Errorf("label %q missing from executed set %v", want, order)
		}
	}
	if len(order) != 3 {
		t.Errorf("executed %d jobs, want 3", len(order))
	}
}

func TestPool_CloseIdempotent(t *testing.T) {
	p := New(2)
	p.Execute(JobFunc(func() {}))

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("second Close() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("second Close() hung")
	}
}

func TestPool_ExecuteAfterClosePanics(t *testing.T) {
	p := New(1)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Execute() after Close should panic")
		}
	}()
	p.Execute(JobFunc(func() {}))
}

func TestPool_NilJobPanics(t *testing.T) {
	p := New(1)
	defer p.Close()

	defer func() {
		if recover() == nil {
			t.Error("Execute(nil) should panic")
		}
	}()
	p.Execute(nil)
}

func TestPool_PanicRetiresWorkerButPoolSurvives(t *testing.T) {
	logger := &testLogger{}
	p := New(2, WithLogger(logger))

	p.Execute(NewNamedJob("boom", JobFunc(func() {
		panic("deliberate")
	})))

	// Wait until the panic has been confined and the worker retired.
	deadline := time.Now().Add(time.Second)
	for p.Stats().LiveWorkers != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("Stats().LiveWorkers = %d, want 1 after panic", p.Stats().LiveWorkers)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := p.Stats().PanickedJobs; got != 1 {
		t.Errorf("Stats().PanickedJobs = %d, want 1", got)
	}
	if got := logger.errorCount(); got != 1 {
		t.Errorf("logged %d errors, want 1", got)
	}

	// The surviving worker keeps draining.
	var completed int64
	for i := 0; i < 5; i++ {
		p.Execute(JobFunc(func() {
			atomic.AddInt64(&completed, 1)
		}))
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if completed != 5 {
		t.Errorf("completed = %d jobs after panic, want 5", completed)
	}
	stats := p.Stats()
	if stats.PanickedJobs != 1 {
		t.Errorf("Stats().PanickedJobs = %d, want 1", stats.PanickedJobs)
	}
	if stats.CompletedJobs != 5 {
		t.Errorf("Stats().CompletedJobs = %d, want 5", stats.CompletedJobs)
	}
}

func TestPool_GoSubmitsClosure(t *testing.T) {
	p := New(1)

	var flag int32
	p.Go(func() {
		atomic.StoreInt32(&flag, 1)
	})

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if atomic.LoadInt32(&flag) != 1 {
		t.Error("Go() closure did not run before Close() returned")
	}
}

func TestPool_Stats(t *testing.T) {
	const jobs = 10
	p := New(2)

	for i := 0; i < jobs; i++ {
		p.Execute(JobFunc(func() {}))
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	stats := p.Stats()
	if stats.SubmittedJobs != jobs {
		t.Errorf("Stats().SubmittedJobs = %d, want %d", stats.SubmittedJobs, jobs)
	}
	if stats.CompletedJobs != jobs {
		t.Errorf("Stats().CompletedJobs = %d, want %d", stats.CompletedJobs, jobs)
	}
	if stats.QueuedJobs != 0 {
		t.Errorf("Stats().QueuedJobs after Close = %d, want 0", stats.QueuedJobs)
	}
	if stats.LiveWorkers != 0 {
		t.Errorf("Stats().LiveWorkers after Close = %d, want 0", stats.LiveWorkers)
	}
	if stats.PanickedJobs != 0 {
		t.Errorf("Stats().PanickedJobs = %d, want 0", stats.PanickedJobs)
	}
}
