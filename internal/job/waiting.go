// Package job holds reusable task entry functions for demos and tests,
// adapted from the teacher's internal/job package to the cooperative
// Yield/Join/Sleep contract instead of a context.Context-cancelled run
// function.
package job

import (
	"context"
	"fmt"
	"time"

	"lwtgo/internal/sched"
)

// SleepWork returns an entry function that sleeps for d via the
// scheduler's cooperative Sleep, the way the teacher's SleepWork slept
// against a deadline-bearing context.
func SleepWork(d time.Duration) sched.EntryFunc {
	return func(ctx context.Context) {
		sched.Sleep(ctx, d)
	}
}

// CounterWork returns an entry function grounded on
// original_source/examples/simple_threads.c's counter_thread: it logs n
// iterations, sleeping and yielding between each, and records every
// iteration on log under mu.
func CounterWork(id int, n int, sleepStep time.Duration, mu Locker, log *[]int) sched.EntryFunc {
	return func(ctx context.Context) {
		for i := 0; i < n; i++ {
			mu.Lock()
			*log = append(*log, id)
			mu.Unlock()

			if sleepStep > 0 {
				sched.Sleep(ctx, sleepStep*time.Duration(id))
			}
			sched.Yield(ctx)
		}
	}
}

// AppendWork returns an entry function that appends id to log (under mu)
// once per call, used as the join target by the join demo and tests.
func AppendWork(id int, mu Locker, log *[]int) sched.EntryFunc {
	return func(ctx context.Context) {
		mu.Lock()
		*log = append(*log, id)
		mu.Unlock()
	}
}

// JoinWork returns an entry function that joins target and then appends
// id to log, grounded on spec.md's "Hello join" scenario.
func JoinWork(id int, target *sched.Task, mu Locker, log *[]int) sched.EntryFunc {
	return func(ctx context.Context) {
		if err := sched.Join(ctx, target); err != nil {
			panic(fmt.Sprintf("job: join failed for task %d: %v", id, err))
		}
		mu.Lock()
		*log = append(*log, id)
		mu.Unlock()
	}
}

// IncrementWork returns an entry function that increments *counter n
// times, taking mu around every increment, used by the multi-worker
// parallelism scenario in spec.md §8.
func IncrementWork(n int, mu Locker, counter *int) sched.EntryFunc {
	return func(ctx context.Context) {
		for i := 0; i < n; i++ {
			mu.Lock()
			*counter++
			mu.Unlock()
		}
	}
}

// Locker is the subset of sync.Mutex this package needs, so callers can
// pass a *sync.Mutex without this package importing sync for its own
// sake beyond this interface.
type Locker interface {
	Lock()
	Unlock()
}
