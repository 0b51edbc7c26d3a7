package sched

import (
	"context"
	"time"
)

// Yield suspends the calling task, making it available to any worker
// (spec §4.6). Outside any task it is a documented no-op.
func Yield(ctx context.Context) {
	t, ok := Current(ctx)
	if !ok {
		return
	}
	t.yield()
}

func (t *Task) yield() {
	s := t.sched
	s.mu.Lock()
	if t.state != StateFinished {
		t.state = StateReady
		s.readyQ.PushLocked(t)
	}
	depth := s.readyQ.SizeLocked()
	s.mu.Unlock()

	s.cond.Signal()
	s.metrics.ReadyQueueDepth(depth)
	s.emit(StatusEvent{Time: time.Now(), Kind: StatusBlock, TaskID: t.id, Reason: "yield"})

	t.suspend <- struct{}{} // switch to the dispatch context of whoever is running us
	<-t.resume              // block until some worker dispatches us again
}

// Join blocks the calling task until target reaches FINISHED. It returns
// immediately, without switching, if target is already FINISHED. At most
// one joiner per target is allowed (spec invariant I4); a second
// concurrent Join on the same target is a contract violation reported as
// ErrAlreadyJoining rather than silently dropped.
func Join(ctx context.Context, target *Task) error {
	t, ok := Current(ctx)
	if !ok {
		return ErrNotInTask
	}
	if target == nil {
		return ErrNilTask
	}
	if target == t {
		return ErrJoinSelf
	}
	return t.join(target)
}

func (t *Task) join(target *Task) error {
	s := t.sched
	s.mu.Lock()
	if target.state == StateFinished {
		s.mu.Unlock()
		return nil
	}
	if target.waiting != nil {
		s.mu.Unlock()
		return ErrAlreadyJoining
	}

	t.state = StateBlocked
	target.waiting = t
	s.mu.Unlock()

	s.metrics.TaskBlocked("join")
	s.emit(StatusEvent{Time: time.Now(), Kind: StatusBlock, TaskID: t.id, Reason: "join"})

	// Not enqueued: target's entry trampoline will re-enqueue us once it
	// reaches FINISHED (spec §4.3 step 5).
	t.suspend <- struct{}{}
	<-t.resume
	return nil
}

// Sleep suspends the calling task for at least d before it becomes
// eligible for re-dispatch. Outside any task it delegates to a plain
// blocking time.Sleep, per spec §4.6.
//
// The wait happens on the task's own goroutine, off the scheduler mutex,
// after the dispatching worker has already been released — unlike the
// source this spec corrects, the worker that dispatched this task is
// free to pick up other work for the whole duration of the sleep.
func Sleep(ctx context.Context, d time.Duration) {
	t, ok := Current(ctx)
	if !ok {
		time.Sleep(d)
		return
	}
	t.sleep(d)
}

func (t *Task) sleep(d time.Duration) {
	s := t.sched

	s.mu.Lock()
	t.state = StateBlocked
	s.mu.Unlock()

	s.metrics.TaskBlocked("sleep")
	s.emit(StatusEvent{Time: time.Now(), Kind: StatusBlock, TaskID: t.id, Reason: "sleep"})

	t.suspend <- struct{}{} // release the dispatching worker now

	if d > 0 {
		time.Sleep(d)
	}

	s.mu.Lock()
	t.state = StateReady
	s.readyQ.PushLocked(t)
	depth := s.readyQ.SizeLocked()
	s.mu.Unlock()

	s.cond.Signal()
	s.metrics.ReadyQueueDepth(depth)

	<-t.resume // park until some worker dispatches us again
}
