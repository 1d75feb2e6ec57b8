package parallel

import (
	"github.com/forgelabs/taskforge/pkg/scheduling/taskpool"
)

// Oversubscription factor for the automatic batch size: aim for four
// batches per worker so stragglers can be stolen.
const batchesPerWorker = 4

// Pool is the subset of the task pool surface the fork-join helper needs.
// *taskpool.Pool satisfies it.
type Pool interface {
	ScheduleWithPriority(fn func(), priority taskpool.Priority) taskpool.Handle
	WorkerCount() int
}

// For invokes fn for every index in [0, count) using the pool, splitting
// the range into contiguous batches sized max(1, count/(workers*4)). It
// blocks until every index has been visited. See ForWithBatchSize.
func For(pool Pool, count int, fn func(index int)) {
	ForWithBatchSize(pool, count, fn, 0)
}

// ForWithBatchSize is For with an explicit batch size; batchSize <= 0
// selects the automatic size.
//
// Guarantees: every index in [0, count) is visited exactly once before the
// call returns. Batches may run concurrently and complete in any order, but
// within a batch fn runs in ascending index order on a single goroutine.
// With a nil pool or no live workers the whole range runs serially on the
// calling goroutine, in ascending order.
//
// ForWithBatchSize blocks via Handle.Wait; do not call it from inside a
// task running on the same pool unless there are spare workers to drain
// the batches, or the wait can deadlock.
func ForWithBatchSize(pool Pool, count int, fn func(index int), batchSize int) {
	if count <= 0 || fn == nil {
		return
	}

	workers := 0
	if pool != nil {
		workers = pool.WorkerCount()
	}
	if workers == 0 {
		// Degraded path: no pool to fork onto.
		for i := 0; i < count; i++ {
			fn(i)
		}
		return
	}

	if batchSize <= 0 {
		batchSize = count / (workers * batchesPerWorker)
		if batchSize < 1 {
			batchSize = 1
		}
	}

	numBatches := (count + batchSize - 1) / batchSize
	handles := make([]taskpool.Handle, 0, numBatches)

	for batch := 0; batch < numBatches; batch++ {
		start := batch * batchSize
		end := start + batchSize
		if end > count {
			end = count
		}
		handles = append(handles, pool.ScheduleWithPriority(func() {
			for i := start; i < end; i++ {
				fn(i)
			}
		}, taskpool.Normal))
	}

	// Handles are independent, so waiting in submission order is safe.
	for _, h := range handles {
		h.Wait()
	}
}
