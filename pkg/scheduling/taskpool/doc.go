/*
Package taskpool provides a process-local, CPU-bound work-stealing task pool
with priority ordering and per-task completion handles.

A Pool owns a fixed set of worker goroutines, one priority-ordered
double-ended queue per worker. Submission from any goroutine places the task
on a uniformly random queue; each worker pops from the front of its own
queue (highest priority first) and, when that is empty, steals from the back
of a random peer's queue (the least valuable work, so the victim's ordering
is disturbed as little as possible).

Basic usage:

	pool := taskpool.New(0) // 0 = one worker per logical CPU, minus one
	defer pool.Shutdown()

	handle := pool.Schedule(func() {
		// do work
	})
	handle.Wait()

	pool.ScheduleWithPriority(rebuildShadowMaps, taskpool.High)
	pool.ScheduleWithPriority(compactAssetCache, taskpool.Background)
	pool.WaitForAll()

Ordering guarantees:

  - Tasks on the same queue execute in descending priority order; equal
    priorities run in submission order, except that stealing removes tasks
    from the back and therefore out of order. That asymmetry is deliberate.
  - No ordering is guaranteed between tasks on different queues.
  - A task's side effects are visible to any goroutine that observes its
    handle reach completion.

Waiting:

Handle.Wait and Pool.WaitForAll are the only blocking operations. Both are
busy-polls with a cooperative yield, not OS-level blocking, so expect bounded
but nonzero CPU usage while waiting. WaitForAll is a global barrier over
every task submitted to the pool, not a scoped one.

Lifecycle and misuse:

A Pool is live from construction until Shutdown joins its workers. Tasks
still queued at shutdown are dropped without running; this is intentional,
shutdown does not drain. Dropped tasks still settle their completion
counters, so waiters are released. Submitting after Shutdown returns an
already-complete Handle and discards the callable. These are caller
contracts, not recoverable errors.

Panics in a task are recovered: the configured PanicHandler (or a stderr
default) is invoked and the task is counted as failed, but its completion
counters are settled like any other task.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics report submissions, executions,
failures, steals, drops, queue depth, and execution latency through
Prometheus, labeled by pool name. See pkg/metrics.
*/
package taskpool
