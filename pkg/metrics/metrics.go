// Package metrics provides Prometheus instrumentation for taskforge components.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskforge components.
type Registry struct {
	// Task Pool Metrics
	TasksScheduled        *prometheus.CounterVec
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TasksStolen           *prometheus.CounterVec
	TasksDropped          *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	PoolWorkers           *prometheus.GaugeVec
	PoolQueued            *prometheus.GaugeVec
	TasksInFlight         *prometheus.GaugeVec

	// Recurring Runner Metrics
	RecurringEntries *prometheus.GaugeVec
	RecurringFired   *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by taskforge components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

var (
	registryMu    sync.Mutex
	registryCache = make(map[prometheus.Registerer]*Registry)
)

// NewRegistry returns the metrics registry bound to the given Prometheus
// registerer, creating it on first use. Calls with the same registerer share
// one Registry, so several instrumented components can expose their series
// through a single registry; components stay distinguishable through the
// name labels on every series.
func NewRegistry(reg prometheus.Registerer) *Registry {
	registryMu.Lock()
	defer registryMu.Unlock()

	if r, ok := registryCache[reg]; ok {
		return r
	}
	r := buildRegistry(reg)
	registryCache[reg] = r
	return r
}

func buildRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		TasksScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_scheduled_total",
				Help:      "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed by workers",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that completed without panicking",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"pool_name"},
		),

		TasksStolen: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_stolen_total",
				Help:      "Total number of tasks taken from another worker's queue",
			},
			[]string{"pool_name"},
		),

		TasksDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_dropped_total",
				Help:      "Total number of queued tasks discarded at shutdown",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Number of live worker goroutines",
			},
			[]string{"pool_name"},
		),

		PoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of tasks currently queued across all workers",
			},
			[]string{"pool_name"},
		),

		TasksInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskforge",
				Subsystem: "pool",
				Name:      "tasks_in_flight",
				Help:      "Number of tasks submitted and not yet completed",
			},
			[]string{"pool_name"},
		),

		RecurringEntries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskforge",
				Subsystem: "recurring",
				Name:      "entries",
				Help:      "Number of registered recurring entries",
			},
			[]string{"runner_name"},
		),

		RecurringFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Subsystem: "recurring",
				Name:      "fired_total",
				Help:      "Total number of recurring entry submissions",
			},
			[]string{"runner_name"},
		),
	}
}
