package recurring

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	tferrors "github.com/forgelabs/taskforge/pkg/common/errors"
	"github.com/forgelabs/taskforge/pkg/common/validation"
	"github.com/forgelabs/taskforge/pkg/metrics"
	"github.com/forgelabs/taskforge/pkg/scheduling/taskpool"
)

// Pool is the submission surface the runner needs from a task pool.
// *taskpool.Pool satisfies it.
type Pool interface {
	ScheduleWithPriority(fn func(), priority taskpool.Priority) taskpool.Handle
}

// Clock abstracts time.Now so tests can drive firing deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Entry describes a registered recurring submission.
type Entry struct {
	ID   string
	Next time.Time
}

// Config holds runner configuration.
type Config struct {
	// Pool receives the fired callables. If nil the runner creates and
	// owns a pool with auto-detected worker count, shut down by Stop.
	Pool Pool

	// Name labels this runner's metric series. Defaults to "default".
	Name string

	// Location is the time zone for cron evaluation. Defaults to time.Local.
	Location *time.Location

	// TickInterval is how often entries are checked for readiness.
	// Defaults to 50ms; negative values are rejected.
	TickInterval time.Duration

	// Priority applies to every fired submission. Defaults to Normal.
	Priority taskpool.Priority

	// Clock overrides the time source, for tests. Defaults to the system
	// clock.
	Clock Clock

	// Metrics enables Prometheus reporting of entry counts and firings.
	Metrics metrics.Config
}

type entry struct {
	id       string
	fn       func()
	interval time.Duration // zero for cron entries
	schedule cron.Schedule // nil for interval entries
	next     time.Time
}

// Runner periodically re-submits registered callables to a task pool, on a
// fixed interval or a cron schedule. The runner itself never executes a
// callable inline; everything goes through the pool.
type Runner struct {
	pool     Pool
	ownPool  *taskpool.Pool
	name     string
	location *time.Location
	tick     time.Duration
	priority taskpool.Priority
	parser   cron.Parser
	clock    Clock
	registry *metrics.Registry

	mu      sync.Mutex
	entries map[string]*entry
	running bool
	stopped bool
	done    chan struct{}
	loopWg  sync.WaitGroup
}

// New creates a runner with default configuration submitting to pool.
func New(pool Pool) *Runner {
	r, _ := NewWithConfig(Config{Pool: pool})
	return r
}

// NewWithConfig creates a runner with custom configuration. The only
// rejected input is a negative TickInterval.
func NewWithConfig(cfg Config) (*Runner, error) {
	if err := validation.ValidateNonNegativeDuration("recurring", "tick_interval", cfg.TickInterval); err != nil {
		return nil, err
	}

	pool := cfg.Pool
	var ownPool *taskpool.Pool
	if pool == nil {
		ownPool = taskpool.New(0)
		pool = ownPool
	}

	name := cfg.Name
	if name == "" {
		name = "default"
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	tick := cfg.TickInterval
	if tick == 0 {
		tick = 50 * time.Millisecond
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.DefaultRegistry
		if cfg.Metrics.Registry != nil {
			registry = metrics.NewRegistry(cfg.Metrics.Registry)
		}
	}

	return &Runner{
		pool:     pool,
		ownPool:  ownPool,
		name:     name,
		location: location,
		tick:     tick,
		priority: cfg.Priority,
		parser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		clock:    clock,
		registry: registry,
		entries:  make(map[string]*entry),
		done:     make(chan struct{}),
	}, nil
}

// Every registers fn to be submitted every interval, first firing one
// interval from now. It fails on an empty or duplicate id, a non-positive
// interval, a nil fn, or a stopped runner.
func (r *Runner) Every(id string, interval time.Duration, fn func()) error {
	if err := validation.ValidatePositiveDuration("recurring", "interval", interval); err != nil {
		return err
	}
	next := r.clock.Now().In(r.location).Add(interval)
	return r.add(&entry{id: id, fn: fn, interval: interval, next: next})
}

// Cron registers fn on a six-field cron expression (seconds enabled), e.g.
// "*/5 * * * * *" for every five seconds. It fails on a malformed
// expression and on the same conditions as Every.
func (r *Runner) Cron(id, expr string, fn func()) error {
	if err := validation.ValidateNotEmpty("recurring", "expression", expr); err != nil {
		return err
	}
	schedule, err := r.parser.Parse(expr)
	if err != nil {
		return fmt.Errorf("%w: cron expression %q: %v", tferrors.ErrInvalidConfiguration, expr, err)
	}
	next := schedule.Next(r.clock.Now().In(r.location))
	return r.add(&entry{id: id, fn: fn, schedule: schedule, next: next})
}

func (r *Runner) add(e *entry) error {
	if err := validation.ValidateNotEmpty("recurring", "id", e.id); err != nil {
		return err
	}
	if e.fn == nil {
		return tferrors.NewValidationError("recurring", "fn", nil, "cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return tferrors.ErrShutdown
	}
	if _, exists := r.entries[e.id]; exists {
		return fmt.Errorf("%w: %q", tferrors.ErrDuplicateID, e.id)
	}

	r.entries[e.id] = e
	r.updateEntriesGauge()
	return nil
}

// Cancel removes the entry with the given id and reports whether it existed.
func (r *Runner) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return false
	}
	delete(r.entries, id)
	r.updateEntriesGauge()
	return true
}

// Entries returns a snapshot of registered entries sorted by id.
func (r *Runner) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Entry{ID: e.id, Next: e.next})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Start launches the tick loop. Starting an already-running runner is a
// no-op; starting after Stop returns ErrShutdown.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return tferrors.ErrShutdown
	}
	if r.running {
		return nil
	}
	r.running = true

	r.loopWg.Add(1)
	go r.run()
	return nil
}

// Stop halts the tick loop and, when the runner owns its pool, shuts the
// pool down. Entries registered at Stop are discarded; Stop is idempotent.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	wasRunning := r.running
	r.running = false
	r.entries = make(map[string]*entry)
	r.updateEntriesGauge()
	r.mu.Unlock()

	close(r.done)
	if wasRunning {
		r.loopWg.Wait()
	}
	if r.ownPool != nil {
		r.ownPool.Shutdown()
	}
}

func (r *Runner) run() {
	defer r.loopWg.Done()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.fireReady()
		}
	}
}

// fireReady submits every entry whose next time has arrived and advances it.
func (r *Runner) fireReady() {
	now := r.clock.Now().In(r.location)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.next.After(now) {
			continue
		}
		r.pool.ScheduleWithPriority(e.fn, r.priority)
		if r.registry != nil {
			r.registry.RecurringFired.WithLabelValues(r.name).Inc()
		}

		if e.schedule != nil {
			e.next = e.schedule.Next(now)
		} else {
			e.next = now.Add(e.interval)
		}
	}
}

// updateEntriesGauge must be called with the mutex held.
func (r *Runner) updateEntriesGauge() {
	if r.registry != nil {
		r.registry.RecurringEntries.WithLabelValues(r.name).Set(float64(len(r.entries)))
	}
}
