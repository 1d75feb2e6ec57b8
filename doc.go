/*
Package taskforge provides a process-local, CPU-bound work-stealing task pool
for Go applications, with priority ordering, completion handles, fork-join
helpers, and recurring submission.

Task Scheduling (pkg/scheduling):
  - taskpool: Priority-ordered work-stealing pool with completion handles
  - parallel: Fork-join helper for data-parallel index loops
  - recurring: Interval and cron-driven re-submission on top of a pool

Instrumentation (pkg/metrics):
  - Prometheus counters, gauges, and histograms for pool activity

Example usage:

	import (
		"github.com/forgelabs/taskforge/pkg/scheduling/parallel"
		"github.com/forgelabs/taskforge/pkg/scheduling/taskpool"
	)

	pool := taskpool.New(0) // auto worker count
	defer pool.Shutdown()

	handle := pool.ScheduleWithPriority(work, taskpool.High)
	handle.Wait()

	parallel.For(pool, len(items), func(i int) {
		process(items[i])
	})
*/
package taskforge
