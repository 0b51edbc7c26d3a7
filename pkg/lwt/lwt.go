// Package lwt is the public facade of a lightweight M:N cooperative task
// runtime: thousands of small tasks multiplexed onto a fixed pool of OS
// worker threads, each task cooperatively yielding, joining, or sleeping
// instead of being preempted.
//
// # Quick start
//
//	s, err := lwt.NewScheduler(4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	s.Start()
//	defer s.Destroy()
//
//	s.Spawn(func(ctx context.Context) {
//		fmt.Println("hello from a task")
//	}, 0)
//
// # Cooperative primitives
//
// Yield, Join, and Sleep all take the context.Context handed to a task's
// entry function by the scheduler; Current recovers the task handle from
// that same context. None of the three is meaningful outside a task:
// Yield is a documented no-op, Join returns ErrNotInTask, and Sleep
// delegates to a plain blocking time.Sleep.
//
// # What this package does not do
//
// Preemption, work stealing, priority scheduling, per-task I/O
// integration, and task cancellation are out of scope; see SPEC_FULL.md.
package lwt

import (
	"context"
	"time"

	"lwtgo/internal/sched"
)

// Version identifies this runtime, mirroring the version header the C
// original shipped at include/lwthread/version.h.
const Version = "0.1.0"

type (
	// Scheduler owns the worker pool and ready queue; see sched.Scheduler.
	Scheduler = sched.Scheduler
	// Task is one cooperative unit of execution; see sched.Task.
	Task = sched.Task
	// TaskID uniquely identifies a Task.
	TaskID = sched.TaskID
	// State is a Task's lifecycle position.
	State = sched.State
	// EntryFunc is a task's body.
	EntryFunc = sched.EntryFunc
	// Config configures a Scheduler; see sched.Config.
	Config = sched.Config
)

// Task states, re-exported for callers that inspect Task.State().
const (
	StateNew      = sched.StateNew
	StateReady    = sched.StateReady
	StateRunning  = sched.StateRunning
	StateBlocked  = sched.StateBlocked
	StateFinished = sched.StateFinished
)

// Sentinel errors, re-exported from the sched package (spec §7).
var (
	ErrInvalidWorkerCount = sched.ErrInvalidWorkerCount
	ErrInvalidEntry       = sched.ErrInvalidEntry
	ErrInvalidStackSize   = sched.ErrInvalidStackSize
	ErrNilTask            = sched.ErrNilTask
	ErrSchedulerStopped   = sched.ErrSchedulerStopped
	ErrTaskNotFinished    = sched.ErrTaskNotFinished
	ErrAlreadyJoining     = sched.ErrAlreadyJoining
	ErrJoinSelf           = sched.ErrJoinSelf
	ErrNotInTask          = sched.ErrNotInTask
	ErrTaskAlreadyAdded   = sched.ErrTaskAlreadyAdded
)

// DefaultStackSize is the stack allocation a Spawn with stackSize 0 gets.
const DefaultStackSize = sched.DefaultStackSize

// NewScheduler creates a scheduler with numWorkers OS worker threads and
// the library's default stack size and no metrics. It does not start any
// worker; call Start for that.
func NewScheduler(numWorkers int) (*Scheduler, error) {
	return sched.New(sched.Config{NumWorkers: numWorkers})
}

// NewSchedulerWithConfig creates a scheduler from a fully specified
// Config, e.g. one loaded via LoadConfig.
func NewSchedulerWithConfig(cfg Config) (*Scheduler, error) {
	return sched.New(cfg)
}

// LoadConfig reads a YAML scheduler configuration from path, falling back
// to defaults when path is empty or unreadable.
func LoadConfig(path string) Config {
	return sched.Load(path)
}

// Spawn creates a task running entry and immediately makes it runnable.
// stackSize of 0 uses DefaultStackSize.
func Spawn(s *Scheduler, entry EntryFunc, stackSize int) (*Task, error) {
	return s.Spawn(entry, stackSize)
}

// Yield suspends the calling task, making it available to any worker.
// It is a no-op when called outside any task.
func Yield(ctx context.Context) {
	sched.Yield(ctx)
}

// Join blocks the calling task until target reaches StateFinished. It
// returns immediately if target is already finished, ErrNotInTask if
// called outside any task, and ErrAlreadyJoining if target already has a
// joiner.
func Join(ctx context.Context, target *Task) error {
	return sched.Join(ctx, target)
}

// Sleep suspends the calling task for at least d. Outside any task it
// delegates to a plain blocking time.Sleep.
func Sleep(ctx context.Context, d time.Duration) {
	sched.Sleep(ctx, d)
}

// Current returns the task running on the calling goroutine, if any.
func Current(ctx context.Context) (*Task, bool) {
	return sched.Current(ctx)
}
