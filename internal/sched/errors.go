package sched

import "errors"

// Invalid-argument and resource errors (spec §7): reported synchronously
// by the offending operation.
var (
	ErrInvalidWorkerCount = errors.New("sched: worker count must be between 1 and MaxWorkers")
	ErrInvalidEntry       = errors.New("sched: entry function must not be nil")
	ErrInvalidStackSize   = errors.New("sched: stack size must not be negative")
	ErrNilTask            = errors.New("sched: task handle must not be nil")
	ErrSchedulerStopped   = errors.New("sched: scheduler is not running")
)

// Contract-violation errors (spec §7): in the original C these are
// programming bugs caught by assertions in debug builds. Go has no
// separate debug-build notion, so they surface as ordinary errors
// instead of being silently tolerated or panicking.
var (
	ErrTaskNotFinished  = errors.New("sched: task must be FINISHED before Cleanup")
	ErrAlreadyJoining   = errors.New("sched: target task already has a joiner")
	ErrJoinSelf         = errors.New("sched: a task cannot join itself")
	ErrNotInTask        = errors.New("sched: called from outside any task")
	ErrTaskAlreadyAdded = errors.New("sched: task is already on the ready queue or running")
)
