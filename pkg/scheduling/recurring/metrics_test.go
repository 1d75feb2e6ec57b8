package recurring

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/forgelabs/taskforge/internal/testutil"
	"github.com/forgelabs/taskforge/pkg/metrics"
	"github.com/forgelabs/taskforge/pkg/scheduling/taskpool"
)

func gatherLabeledValue(t *testing.T, reg *prometheus.Registry, family, labelName, labelValue string) float64 {
	t.Helper()

	families, err := reg.Gather()
	testutil.AssertNoError(t, err)

	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == labelName && label.GetValue() == labelValue {
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

func gatherRunnerValue(t *testing.T, reg *prometheus.Registry, family, runnerName string) float64 {
	t.Helper()
	return gatherLabeledValue(t, reg, family, "runner_name", runnerName)
}

func TestRunnerReportsMetrics(t *testing.T) {
	clock := testutil.NewMockClock(time.Time{})
	reg := prometheus.NewRegistry()

	pool := taskpool.New(2)
	t.Cleanup(pool.Shutdown)

	runner, err := NewWithConfig(Config{
		Pool:         pool,
		Name:         "frame",
		TickInterval: 2 * time.Millisecond,
		Clock:        clock,
		Metrics:      metrics.Config{Enabled: true, Registry: reg},
	})
	testutil.AssertNoError(t, err)
	t.Cleanup(runner.Stop)

	var fired atomic.Int32
	testutil.AssertNoError(t, runner.Every("tick", time.Second, func() { fired.Add(1) }))
	testutil.AssertEqual(t, gatherRunnerValue(t, reg, "taskforge_recurring_entries", "frame"), float64(1))

	testutil.AssertNoError(t, runner.Start())
	clock.Advance(time.Second)
	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return gatherRunnerValue(t, reg, "taskforge_recurring_fired_total", "frame") >= 1
	})

	runner.Cancel("tick")
	testutil.AssertEqual(t, gatherRunnerValue(t, reg, "taskforge_recurring_entries", "frame"), float64(0))
}

func TestPoolAndRunnerShareOneRegistry(t *testing.T) {
	clock := testutil.NewMockClock(time.Time{})
	reg := prometheus.NewRegistry()
	mc := metrics.Config{Enabled: true, Registry: reg}

	pool := taskpool.NewWithConfigAndMetrics(taskpool.Config{WorkerCount: 2}, "shared", mc)
	t.Cleanup(pool.Shutdown)

	// Constructing the runner against the same registry must not trip
	// duplicate collector registration.
	runner, err := NewWithConfig(Config{
		Pool:         pool,
		Name:         "shared",
		TickInterval: 2 * time.Millisecond,
		Clock:        clock,
		Metrics:      mc,
	})
	testutil.AssertNoError(t, err)
	t.Cleanup(runner.Stop)

	var fired atomic.Int32
	testutil.AssertNoError(t, runner.Every("tick", time.Second, func() { fired.Add(1) }))
	testutil.AssertNoError(t, runner.Start())

	pool.Schedule(func() {}).Wait()
	clock.Advance(time.Second)
	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return gatherRunnerValue(t, reg, "taskforge_recurring_fired_total", "shared") >= 1
	})

	executed := gatherLabeledValue(t, reg, "taskforge_pool_tasks_executed_total", "pool_name", "shared")
	if executed < 1 {
		t.Errorf("want at least 1 executed task on the shared registry, got %v", executed)
	}
}
