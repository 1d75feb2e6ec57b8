/*
Package recurring re-submits registered callables to a taskpool.Pool on a
fixed interval or a cron schedule.

A Runner polls its entries on a short tick and pushes ready callables into
the pool; it never runs them inline, so a slow callable delays nothing but
its own next firing check. Cron expressions use the six-field form with a
seconds column.

Basic usage:

	pool := taskpool.New(0)
	defer pool.Shutdown()

	runner := recurring.New(pool)
	defer runner.Stop()

	runner.Every("asset-gc", 30*time.Second, assets.CollectGarbage)
	runner.Cron("hourly-report", "0 0 * * * *", stats.EmitReport)
	runner.Start()

Firing is best effort: a tick that arrives late fires the entry once and
schedules the next occurrence from the current time, it does not replay
missed occurrences.
*/
package recurring
