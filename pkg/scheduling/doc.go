/*
Package scheduling provides task scheduling and execution primitives for Go applications.

This package offers components for running CPU-bound work across a fixed set
of workers:

  - taskpool: Priority-ordered work-stealing pool with completion handles
  - parallel: Fork-join helper for data-parallel index loops
  - recurring: Interval and cron-driven re-submission on top of a pool

Task Pool:

The pool provides controlled concurrent execution with priorities:

	pool := taskpool.New(0) // auto worker count
	defer pool.Shutdown()

	handle := pool.ScheduleWithPriority(func() {
		// Do work
	}, taskpool.High)
	handle.Wait()

Fork-Join:

parallel.For splits an index range into batches and joins on completion:

	parallel.For(pool, len(items), func(i int) {
		process(items[i])
	})

Recurring:

The runner re-submits callables on intervals or cron schedules:

	runner := recurring.New(pool)
	defer runner.Stop()

	runner.Every("asset-gc", 30*time.Second, collectGarbage)
	runner.Cron("nightly", "0 0 3 * * *", rebuildIndex)
	runner.Start()

All components are safe for concurrent use from any goroutine.
*/
package scheduling
