package sched

import (
	"context"
)

// DefaultStackSize is the stack allocation used when a caller passes 0.
const DefaultStackSize = 64 * 1024 // 64 KiB

// TaskID uniquely identifies a task within the scheduler that created it.
type TaskID uint64

// EntryFunc is a task's body. The context it receives carries the task's
// own handle (see Current) and is otherwise plain: no cancellation is
// threaded through it by the scheduler, since cancellation of in-flight
// tasks is explicitly not provided (spec §5).
type EntryFunc func(ctx context.Context)

// Task is one cooperative unit of execution. It is backed by a single
// dedicated goroutine that blocks on resume until the scheduler dispatches
// it, and hands control back on suspend; see trampoline.go.
type Task struct {
	id    TaskID
	entry EntryFunc
	sched *Scheduler

	state   State
	waiting *Task // the task currently blocked in Join on this one, if any

	stackSize int
	scratch   []byte // stand-in for an owned stack; see SPEC_FULL.md §"Stack and canary"

	resume  chan struct{} // worker -> task: "you're dispatched, run"
	suspend chan struct{} // task -> worker: "I've suspended or finished"
}

type taskContextKey struct{}

// Current returns the task running on the calling goroutine, if ctx was
// produced by the scheduler's entry trampoline. This is the Go stand-in
// for spec's thread-local self(): the pack never implements goroutine-local
// storage, but core.GetCurrentTaskRunner(ctx) in Swind-go-task-runner shows
// the idiomatic way to carry "what am I running under" through a context.
func Current(ctx context.Context) (*Task, bool) {
	t, ok := ctx.Value(taskContextKey{}).(*Task)
	return t, ok
}

func withTask(ctx context.Context, t *Task) context.Context {
	return context.WithValue(ctx, taskContextKey{}, t)
}

// ID returns the task's scheduler-assigned identifier.
func (t *Task) ID() TaskID { return t.id }

// State returns the task's current lifecycle state. Racing with a
// concurrent transition is expected of any caller outside the scheduler
// mutex; it is offered for diagnostics and tests, not for control flow.
func (t *Task) State() State {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.state
}

// Scratch returns the task's stack-stand-in buffer. It is private to this
// task: only the task's own goroutine ever touches it, satisfying the
// no-concurrent-stack-access half of spec §5 (P6 Stack isolation is
// testable by writing a canary here, yielding, and reading it back).
func (t *Task) Scratch() []byte { return t.scratch }

// newTask allocates a task in state NEW and starts its goroutine, which
// stays parked in runTrampoline until the first dispatch. It does not make
// the task visible to any worker; callers combine newTask with
// Scheduler.AddTask (see Scheduler.Spawn) the way spec's lifecycle section
// separates "created NEW" from "transitions to READY on enqueue".
func newTask(s *Scheduler, entry EntryFunc, stackSize int) (*Task, error) {
	if entry == nil {
		return nil, ErrInvalidEntry
	}
	if stackSize < 0 {
		return nil, ErrInvalidStackSize
	}
	if stackSize == 0 {
		stackSize = DefaultStackSize
	}

	t := &Task{
		entry:     entry,
		sched:     s,
		state:     StateNew,
		stackSize: stackSize,
		scratch:   make([]byte, stackSize),
		resume:    make(chan struct{}),
		suspend:   make(chan struct{}),
	}

	s.mu.Lock()
	t.id = TaskID(s.nextID)
	s.nextID++
	s.mu.Unlock()

	go runTrampoline(t)

	return t, nil
}

// Cleanup releases the task's stack stand-in. The caller must guarantee
// the task is FINISHED (invariant I5); calling Cleanup earlier is a
// contract violation and returns ErrTaskNotFinished rather than silently
// freeing a stack a RUNNING or BLOCKED task still needs.
func (t *Task) Cleanup() error {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if t.state != StateFinished {
		return ErrTaskNotFinished
	}
	t.scratch = nil
	return nil
}
