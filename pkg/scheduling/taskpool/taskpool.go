package taskpool

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// Schedule submits fn at Normal priority. See ScheduleWithPriority.
func (p *Pool) Schedule(fn func()) Handle {
	return p.ScheduleWithPriority(fn, Normal)
}

// ScheduleWithPriority submits fn for execution on some worker and returns
// a Handle tracking its completion. It never blocks: the task is placed on
// a uniformly random worker queue, which spreads load without a
// synchronized submission hotspot, and one idle worker is woken.
//
// Submitting a nil fn, or submitting after Shutdown, drops the task and
// returns an already-complete Handle. Racing submissions against Shutdown
// is a caller contract violation, not a supported pattern.
func (p *Pool) ScheduleWithPriority(fn func(), priority Priority) Handle {
	if fn == nil || !p.running.Load() {
		return Handle{}
	}

	t := task{fn: fn, priority: priority, handle: newHandle()}
	t.handle.increment()
	p.inFlight.Add(1)
	p.totalSubmitted.Add(1)

	p.queues[rand.Intn(len(p.queues))].push(t)
	p.notify()

	if m := p.metrics; m != nil {
		m.registry.TasksScheduled.WithLabelValues(m.name).Inc()
		m.registry.TasksInFlight.WithLabelValues(m.name).Set(float64(p.inFlight.Load()))
		m.registry.PoolQueued.WithLabelValues(m.name).Set(float64(p.QueuedTasks()))
	}
	return t.handle
}

// ScheduleBatch submits each callable in order and returns the handles in
// the same order. There is no atomicity across the batch: early tasks may
// begin executing before later ones have been submitted.
func (p *Pool) ScheduleBatch(fns []func(), priority Priority) []Handle {
	handles := make([]Handle, 0, len(fns))
	for _, fn := range fns {
		handles = append(handles, p.ScheduleWithPriority(fn, priority))
	}
	return handles
}

// WaitForAll blocks until the pool's in-flight count reaches zero. This is
// a global barrier over every task submitted to this pool and not yet
// completed, not a scoped one; tasks submitted concurrently by other
// goroutines extend the wait. Like Handle.Wait it busy-polls with a
// cooperative yield.
func (p *Pool) WaitForAll() {
	for p.inFlight.Load() > 0 {
		runtime.Gosched()
	}
}

// WorkerCount returns the number of live workers, or zero once Shutdown
// has begun.
func (p *Pool) WorkerCount() int {
	if !p.running.Load() {
		return 0
	}
	return len(p.queues)
}

// QueuedTasks returns the number of tasks currently sitting in worker
// queues, summed across all workers.
func (p *Pool) QueuedTasks() int {
	n := 0
	for _, q := range p.queues {
		n += q.size()
	}
	return n
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *Pool) TotalSubmitted() int64 {
	return p.totalSubmitted.Load()
}

// TotalCompleted returns the total number of tasks executed to completion,
// including tasks that panicked.
func (p *Pool) TotalCompleted() int64 {
	return p.totalCompleted.Load()
}

// TotalStolen returns how many tasks were executed by a worker other than
// the one whose queue they were pushed to.
func (p *Pool) TotalStolen() int64 {
	return p.totalStolen.Load()
}

// Shutdown stops the workers and joins them. Tasks still queued when the
// workers exit are dropped without being executed; that is intentional,
// Shutdown does not drain. Dropped tasks still have their handle and
// in-flight counters settled so Wait and WaitForAll cannot wedge on them.
// Shutdown is idempotent.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.running.Store(false)
		close(p.stop)
		p.workerWg.Wait()

		dropped := 0
		for _, q := range p.queues {
			for _, t := range q.drain() {
				t.handle.decrement()
				p.inFlight.Add(-1)
				dropped++
			}
		}

		if m := p.metrics; m != nil {
			if dropped > 0 {
				m.registry.TasksDropped.WithLabelValues(m.name).Add(float64(dropped))
			}
			m.registry.PoolWorkers.WithLabelValues(m.name).Set(0)
			m.registry.PoolQueued.WithLabelValues(m.name).Set(0)
			m.registry.TasksInFlight.WithLabelValues(m.name).Set(float64(p.inFlight.Load()))
		}
	})
}

// notify wakes at most one idle worker without ever blocking the submitter.
func (p *Pool) notify() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// workerLoop runs until Shutdown: drain the own queue front-first, then try
// to steal from the back of random victims, then idle briefly so the
// running flag is re-checked even when no wake-ups arrive.
func (p *Pool) workerLoop(index int) {
	defer p.workerWg.Done()

	for p.running.Load() {
		if t, ok := p.queues[index].tryPopFront(); ok {
			p.execute(t)
			continue
		}

		if t, ok := p.trySteal(index); ok {
			p.totalStolen.Add(1)
			if m := p.metrics; m != nil {
				m.registry.TasksStolen.WithLabelValues(m.name).Inc()
			}
			p.execute(t)
			continue
		}

		select {
		case <-p.stop:
			return
		case <-p.wake:
		case <-time.After(p.cfg.IdlePollInterval):
		}
	}
}

// trySteal probes every other queue once, starting at a random victim so
// thieves do not converge on the same target. Probes use TryLock and take
// from the back, so a busy victim is never blocked and keeps its most
// urgent work.
func (p *Pool) trySteal(self int) (task, bool) {
	n := len(p.queues)
	start := rand.Intn(n)
	for i := 0; i < n; i++ {
		victim := (start + i) % n
		if victim == self {
			continue
		}
		if t, ok := p.queues[victim].tryStealBack(); ok {
			return t, true
		}
	}
	return task{}, false
}

// execute runs a task and settles its accounting. The deferred block runs
// even when the callable panics, so the handle and in-flight counters
// always reach their decrements and waiters observe completion.
func (p *Pool) execute(t task) {
	start := time.Now()
	failed := false

	defer func() {
		if r := recover(); r != nil {
			failed = true
			stack := debug.Stack()
			if h := p.cfg.PanicHandler; h != nil {
				h(r, stack)
			} else {
				fmt.Fprintf(os.Stderr, "taskforge: task panicked: %v\n%s", r, stack)
			}
		}

		// Record totals before the counters drop so anything a waiter can
		// observe is settled once Wait returns.
		p.totalCompleted.Add(1)
		if m := p.metrics; m != nil {
			m.observeExecution(time.Since(start), failed)
		}

		t.handle.decrement()
		p.inFlight.Add(-1)

		if m := p.metrics; m != nil {
			m.registry.TasksInFlight.WithLabelValues(m.name).Set(float64(p.inFlight.Load()))
		}
	}()

	t.fn()
}
