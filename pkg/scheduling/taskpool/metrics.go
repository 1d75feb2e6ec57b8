package taskpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/forgelabs/taskforge/pkg/metrics"
)

// poolMetrics binds a pool to a named set of Prometheus series. It is set
// before workers start so the worker loops can read it without a lock.
type poolMetrics struct {
	registry *metrics.Registry
	name     string
}

// NewWithMetrics creates a pool that reports Prometheus metrics under the
// given name. Each call uses a private prometheus registry so multiple
// pools can coexist without registration conflicts; use
// NewWithConfigAndMetrics to target a registry you expose.
func NewWithMetrics(workerCount int, name string) *Pool {
	return NewWithConfigAndMetrics(Config{WorkerCount: workerCount}, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
}

// NewWithConfigAndMetrics creates a pool with custom config and metrics.
// With metrics disabled it behaves exactly like NewWithConfig.
func NewWithConfigAndMetrics(cfg Config, name string, mc metrics.Config) *Pool {
	if !mc.Enabled {
		return NewWithConfig(cfg)
	}

	registry := metrics.DefaultRegistry
	if mc.Registry != nil {
		registry = metrics.NewRegistry(mc.Registry)
	}
	return newPool(cfg, &poolMetrics{registry: registry, name: name})
}

// observeExecution records one finished task execution.
func (m *poolMetrics) observeExecution(d time.Duration, failed bool) {
	m.registry.TaskExecutionDuration.WithLabelValues(m.name).Observe(d.Seconds())
	m.registry.TasksExecuted.WithLabelValues(m.name).Inc()
	if failed {
		m.registry.TasksFailed.WithLabelValues(m.name).Inc()
	} else {
		m.registry.TasksCompleted.WithLabelValues(m.name).Inc()
	}
}
