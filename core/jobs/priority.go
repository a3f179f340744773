package jobs

import "fmt"

// Priority determines which queue a job uses.
type Priority int

const (
	// PriorityLow is for work that can wait, such as warming caches.
	PriorityLow Priority = iota
	// PriorityNormal is the default for asset loads.
	PriorityNormal
	// PriorityHigh is for work a caller is actively blocked on.
	PriorityHigh

	priorityCount = int(PriorityHigh) + 1
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

func (p Priority) valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}
