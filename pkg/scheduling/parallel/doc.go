/*
Package parallel provides a fork-join helper for data-parallel index loops
on top of a taskpool.Pool.

For splits [0, count) into contiguous batches, submits one task per batch,
and blocks until all batches have completed:

	pool := taskpool.New(0)
	defer pool.Shutdown()

	parallel.For(pool, len(particles), func(i int) {
		particles[i].Integrate(dt)
	})

The automatic batch size targets four batches per worker, which keeps the
workers busy while leaving enough granularity for work stealing to absorb
uneven batch costs. Pass an explicit size to ForWithBatchSize when the cost
per index is known to be uniform or very small.

Without a pool (nil, or one whose workers are gone) the loop degrades to a
serial run on the calling goroutine, still visiting every index exactly once
and in ascending order.
*/
package parallel
