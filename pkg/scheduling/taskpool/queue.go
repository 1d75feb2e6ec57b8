package taskpool

import "sync"

// queue is a double-ended, priority-ordered task sequence owned by one
// worker. The slice is kept sorted by descending priority; within a
// priority, submission order is preserved, so the front always holds the
// highest-priority, oldest-among-equals task.
//
// Pushes acquire the lock unconditionally so submitters are never starved.
// Pops and steals use TryLock so workers probing for work never block on a
// contended queue.
type queue struct {
	mu    sync.Mutex
	items []task
}

// push inserts t behind every queued task of equal or higher priority.
func (q *queue) push(t task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := len(q.items)
	for i > 0 && q.items[i-1].priority < t.priority {
		i--
	}
	q.items = append(q.items, task{})
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = t
}

// tryPopFront removes the highest-priority task. It fails without blocking
// when the lock is contended or the queue is empty.
func (q *queue) tryPopFront() (task, bool) {
	if !q.mu.TryLock() {
		return task{}, false
	}
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return task{}, false
	}
	t := q.items[0]
	q.items[0] = task{} // release the callable
	q.items = q.items[1:]
	return t, true
}

// tryStealBack removes the lowest-priority task from the back. Thieves take
// the least valuable work so the victim keeps its own priority ordering
// intact at the front.
func (q *queue) tryStealBack() (task, bool) {
	if !q.mu.TryLock() {
		return task{}, false
	}
	defer q.mu.Unlock()

	n := len(q.items)
	if n == 0 {
		return task{}, false
	}
	t := q.items[n-1]
	q.items[n-1] = task{}
	q.items = q.items[:n-1]
	return t, true
}

// drain empties the queue and returns the removed tasks so the pool can
// settle their counters.
func (q *queue) drain() []task {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := q.items
	q.items = nil
	return dropped
}

// size reports the number of queued tasks.
func (q *queue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
