package taskpool

// task bundles a callable with its priority and completion handle. It is
// created at submission and consumed exactly once by whichever worker
// dequeues it.
type task struct {
	fn       func()
	priority Priority
	handle   Handle
}
