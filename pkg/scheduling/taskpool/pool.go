package taskpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const defaultIdlePollInterval = time.Millisecond

// Config holds configuration options for creating a task pool.
type Config struct {
	// WorkerCount is the number of worker goroutines. Zero or negative
	// means auto: one worker per logical CPU minus one reserved for the
	// submitting thread, with a minimum of one.
	WorkerCount int

	// IdlePollInterval bounds how long an idle worker sleeps before
	// re-checking its queues and the running flag. Zero means 1ms.
	IdlePollInterval time.Duration

	// PanicHandler is called when a task panics during execution, with the
	// recovered value and the goroutine stack. If nil, the panic is written
	// to stderr. Completion bookkeeping happens either way, so waiters
	// never wedge on a panicked task.
	PanicHandler func(recovered interface{}, stack []byte)
}

// Pool is a work-stealing task pool: a fixed set of worker goroutines, each
// owning a priority-ordered double-ended queue. Submission places a task on
// a uniformly random queue; idle workers steal from the back of their peers'
// queues. Any goroutine may submit from any place.
//
// A Pool is created with New or NewWithConfig and released with Shutdown.
// Submitting after Shutdown is a documented no-op, not an error.
type Pool struct {
	cfg Config

	queues []*queue
	wake   chan struct{}
	stop   chan struct{}

	running atomic.Bool

	inFlight       atomic.Int64
	totalSubmitted atomic.Int64
	totalCompleted atomic.Int64
	totalStolen    atomic.Int64

	workerWg     sync.WaitGroup
	shutdownOnce sync.Once

	metrics *poolMetrics
}

// New creates a pool with workerCount workers and default configuration.
// workerCount 0 auto-detects from the number of logical CPUs.
func New(workerCount int) *Pool {
	return NewWithConfig(Config{WorkerCount: workerCount})
}

// NewWithConfig creates a pool with the specified configuration and starts
// its workers.
func NewWithConfig(cfg Config) *Pool {
	return newPool(cfg, nil)
}

func newPool(cfg Config, pm *poolMetrics) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = autoWorkerCount()
	}
	if cfg.IdlePollInterval <= 0 {
		cfg.IdlePollInterval = defaultIdlePollInterval
	}

	p := &Pool{
		cfg:     cfg,
		queues:  make([]*queue, cfg.WorkerCount),
		wake:    make(chan struct{}, cfg.WorkerCount),
		stop:    make(chan struct{}),
		metrics: pm,
	}
	for i := range p.queues {
		p.queues[i] = &queue{}
	}
	p.running.Store(true)

	if pm != nil {
		pm.registry.PoolWorkers.WithLabelValues(pm.name).Set(float64(cfg.WorkerCount))
	}

	p.workerWg.Add(cfg.WorkerCount)
	for i := 0; i < cfg.WorkerCount; i++ {
		go p.workerLoop(i)
	}
	return p
}

// autoWorkerCount reserves one logical CPU for the submitting thread.
func autoWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}
