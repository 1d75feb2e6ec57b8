package taskpool

import (
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/forgelabs/taskforge/internal/testutil"
	"github.com/forgelabs/taskforge/pkg/metrics"
)

// gatherValue returns the single sample value of the named family for the
// given pool label, or -1 when the series does not exist.
func gatherValue(t *testing.T, reg *prometheus.Registry, family, poolName string) float64 {
	t.Helper()

	families, err := reg.Gather()
	testutil.AssertNoError(t, err)

	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "pool_name" && label.GetValue() == poolName {
					if c := m.GetCounter(); c != nil {
						return c.GetValue()
					}
					if g := m.GetGauge(); g != nil {
						return g.GetValue()
					}
				}
			}
		}
	}
	return -1
}

func TestPoolReportsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := NewWithConfigAndMetrics(Config{WorkerCount: 2}, "render",
		metrics.Config{Enabled: true, Registry: reg})

	var executed atomic.Int32
	const numTasks = 5
	for i := 0; i < numTasks; i++ {
		pool.Schedule(func() { executed.Add(1) })
	}
	pool.WaitForAll()

	testutil.AssertEqual(t, executed.Load(), int32(numTasks))
	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_tasks_scheduled_total", "render"), float64(numTasks))
	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_tasks_executed_total", "render"), float64(numTasks))
	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_tasks_completed_total", "render"), float64(numTasks))
	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_workers", "render"), float64(2))

	pool.Shutdown()
	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_workers", "render"), float64(0))
}

func TestPoolCountsFailedTasks(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := NewWithConfigAndMetrics(
		Config{WorkerCount: 1, PanicHandler: func(interface{}, []byte) {}},
		"render", metrics.Config{Enabled: true, Registry: reg})
	defer pool.Shutdown()

	h := pool.Schedule(func() { panic("boom") })
	h.Wait()

	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_tasks_failed_total", "render"), float64(1))
	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_tasks_completed_total", "render"), float64(0))
}

func TestDisabledMetricsBehavesLikePlainPool(t *testing.T) {
	pool := NewWithConfigAndMetrics(Config{WorkerCount: 1}, "render", metrics.Config{Enabled: false})
	defer pool.Shutdown()

	var executed atomic.Int32
	h := pool.Schedule(func() { executed.Add(1) })
	h.Wait()
	testutil.AssertEqual(t, executed.Load(), int32(1))
}

func TestShutdownCountsDroppedTasks(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := NewWithConfigAndMetrics(Config{WorkerCount: 1}, "render",
		metrics.Config{Enabled: true, Registry: reg})

	gate := make(chan struct{})
	started := make(chan struct{})
	pool.Schedule(func() {
		close(started)
		<-gate
	})
	<-started

	for i := 0; i < 4; i++ {
		pool.Schedule(func() {})
	}

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()
	testutil.Eventually(t, testutil.TestTimeout, func() bool { return pool.WorkerCount() == 0 })
	close(gate)
	<-done

	testutil.AssertEqual(t, gatherValue(t, reg, "taskforge_pool_tasks_dropped_total", "render"), float64(4))
}
