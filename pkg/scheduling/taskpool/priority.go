package taskpool

// Priority controls where a task lands in its worker queue. Higher
// priorities are dequeued first; submission order is preserved among
// tasks of equal priority on the same queue.
type Priority int

// Priority levels, lowest to highest.
const (
	Background Priority = iota
	Low
	Normal
	High
)

// String returns the priority name for logs and metric labels.
func (p Priority) String() string {
	switch p {
	case Background:
		return "background"
	case Low:
		return "low"
	case Normal:
		return "normal"
	case High:
		return "high"
	default:
		return "unknown"
	}
}
