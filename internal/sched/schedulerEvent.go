// internal/sched/schedulerEvent.go

package sched

import (
	"time"
)

// StatusKind represents the type of scheduler event.
type StatusKind int

const (
	StatusEnqueue  StatusKind = iota // AddTask moved the task NEW -> READY and pushed it (wakeups from join or sleep emit no event)
	StatusDispatch                   // a worker popped the task and is about to resume it
	StatusBlock                      // the task suspended (yield, join, or sleep)
	StatusFinish                     // the task's entry returned and it reached FINISHED
	StatusStop                       // the scheduler was stopped
)

// StatusEvent is emitted on the state-affecting actions listed by
// StatusKind; it is the
// logging/metrics seam, not a correctness mechanism (see Scheduler.emit).
type StatusEvent struct {
	Time     time.Time
	Kind     StatusKind
	TaskID   TaskID
	WorkerID int    // meaningful for StatusDispatch
	Reason   string // meaningful for StatusBlock: "yield", "join", or "sleep"
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusEnqueue:
		return "Enqueue"
	case StatusDispatch:
		return "Dispatch"
	case StatusBlock:
		return "Block"
	case StatusFinish:
		return "Finish"
	case StatusStop:
		return "Stop"
	default:
		return "Unknown"
	}
}
