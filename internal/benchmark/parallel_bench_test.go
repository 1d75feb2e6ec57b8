package benchmark

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/forgelabs/taskforge/pkg/scheduling/parallel"
	"github.com/forgelabs/taskforge/pkg/scheduling/taskpool"
)

// BenchmarkParallelFor compares fork-join against a serial loop for a
// mid-sized index range.
func BenchmarkParallelFor(b *testing.B) {
	const count = 10000

	b.Run("serial", func(b *testing.B) {
		var sink atomic.Int64
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := 0; j < count; j++ {
				sink.Add(1)
			}
		}
	})

	for _, workers := range []int{2, 4, 8} {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool := taskpool.New(workers)
			defer pool.Shutdown()

			var sink atomic.Int64
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				parallel.For(pool, count, func(int) {
					sink.Add(1)
				})
			}
		})
	}
}

// BenchmarkParallelForBatchSizes measures the cost of batch granularity.
func BenchmarkParallelForBatchSizes(b *testing.B) {
	const count = 10000
	pool := taskpool.New(4)
	defer pool.Shutdown()

	for _, batchSize := range []int{16, 64, 256, 1024} {
		b.Run(fmt.Sprintf("batch-%d", batchSize), func(b *testing.B) {
			var sink atomic.Int64
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				parallel.ForWithBatchSize(pool, count, func(int) {
					sink.Add(1)
				}, batchSize)
			}
		})
	}
}
