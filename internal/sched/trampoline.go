package sched

import (
	"context"
	"time"
)

// runTrampoline is the body of every task's dedicated goroutine. It
// implements spec §4.3: block until first dispatched, run the user's
// entry function, then transition to FINISHED and wake a joiner under
// the scheduler mutex, and finally hand control back to whichever
// worker dispatched this run without re-enqueueing (the task is done).
//
// "Entering the trampoline" in the original is makecontext() pointing a
// fresh stack at this function instead of the user's; here it is simply
// the first statement this goroutine ever runs, since the goroutine
// itself is the saved context (see SPEC_FULL.md).
func runTrampoline(t *Task) {
	<-t.resume // wait for the first dispatch

	ctx := withTask(context.Background(), t)
	t.entry(ctx)

	s := t.sched
	s.mu.Lock()
	t.state = StateFinished
	var joiner *Task
	if t.waiting != nil {
		joiner = t.waiting
		joiner.state = StateReady
		s.readyQ.PushLocked(joiner)
		t.waiting = nil
	}
	s.mu.Unlock()

	s.metrics.TaskFinished()
	s.emit(StatusEvent{Time: time.Now(), Kind: StatusFinish, TaskID: t.id})
	if joiner != nil {
		s.cond.Signal()
	}

	// Final suspend: unlike Yield, this does not re-enqueue the task and
	// the goroutine exits right after, so there is no matching <-t.resume.
	t.suspend <- struct{}{}
}
