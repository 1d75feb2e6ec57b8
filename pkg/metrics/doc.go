/*
Package metrics provides Prometheus instrumentation for taskforge components.

A Registry bundles every metric family used by the library. Components accept
a metrics.Config at construction time; when enabled they report into either
the DefaultRegistry (backed by prometheus.DefaultRegisterer) or a Registry
built around a caller-supplied registerer.

Basic usage:

	reg := prometheus.NewRegistry()
	pool := taskpool.NewWithConfigAndMetrics(taskpool.Config{WorkerCount: 4},
		"render", metrics.Config{Enabled: true, Registry: reg})

	// Expose with promhttp
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

Metric families use the "taskforge" namespace with "pool" and "recurring"
subsystems, labeled by pool or runner name so several instances can share a
registry. NewRegistry hands out one Registry per registerer, so any number
of components may be pointed at the same exposed registry.
*/
package metrics
