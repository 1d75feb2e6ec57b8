package taskpool

import (
	"runtime"
	"sync/atomic"
)

// Handle tracks completion of the task (or tasks) it was issued for.
// Handles are small value types; copies share the same underlying counter,
// so any number of consumers can observe or wait on the same completion.
// A Handle constructed independently of the pool (the zero value) is
// unrelated to any task and is always complete.
type Handle struct {
	counter *atomic.Int32
}

func newHandle() Handle {
	return Handle{counter: new(atomic.Int32)}
}

// Wait blocks until every task associated with the handle has finished.
// The wait is a busy-poll with a cooperative yield between checks, so it
// has low wake-up latency but burns CPU while waiting. Do not call Wait
// from inside a task that this handle is itself counting; that deadlocks
// by construction.
func (h Handle) Wait() {
	for h.counter != nil && h.counter.Load() > 0 {
		runtime.Gosched()
	}
}

// IsComplete reports whether every associated task has finished. It never
// blocks. The zero-value Handle is complete.
func (h Handle) IsComplete() bool {
	return h.counter == nil || h.counter.Load() == 0
}

func (h Handle) increment() {
	if h.counter != nil {
		h.counter.Add(1)
	}
}

func (h Handle) decrement() {
	if h.counter != nil {
		h.counter.Add(-1)
	}
}
