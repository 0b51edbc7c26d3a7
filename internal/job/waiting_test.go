package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"lwtgo/internal/sched"
)

func newTestScheduler(t *testing.T, workers int) *sched.Scheduler {
	t.Helper()
	s, err := sched.New(sched.Config{NumWorkers: workers})
	if err != nil {
		t.Fatalf("sched.New() error = %v", err)
	}
	s.Start()
	t.Cleanup(s.Destroy)
	return s
}

func TestCounterWorkLogsEachIteration(t *testing.T) {
	s := newTestScheduler(t, 1)

	var mu sync.Mutex
	var log []int
	done := make(chan struct{})

	if _, err := s.Spawn(func(ctx context.Context) {
		CounterWork(7, 3, 0, &mu, &log)(ctx)
		close(done)
	}, 0); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CounterWork never finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(log) != 3 {
		t.Fatalf("log = %v, want 3 entries", log)
	}
	for _, v := range log {
		if v != 7 {
			t.Fatalf("log = %v, want every entry to be 7", log)
		}
	}
}

func TestJoinWorkWaitsForTarget(t *testing.T) {
	s := newTestScheduler(t, 1)

	var mu sync.Mutex
	var log []int

	target, err := s.Spawn(AppendWork(1, &mu, &log), 0)
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	done := make(chan struct{})
	if _, err := s.Spawn(func(ctx context.Context) {
		JoinWork(2, target, &mu, &log)(ctx)
		close(done)
	}, 0); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("JoinWork never finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(log) != 2 || log[0] != 1 || log[1] != 2 {
		t.Fatalf("log = %v, want [1 2]", log)
	}
}

func TestIncrementWorkIsSerializedByCaller(t *testing.T) {
	s := newTestScheduler(t, 4)

	var mu sync.Mutex
	var counter int
	var wg sync.WaitGroup

	const tasks = 20
	const n = 10
	for i := 0; i < tasks; i++ {
		wg.Add(1)
		if _, err := s.Spawn(func(ctx context.Context) {
			defer wg.Done()
			IncrementWork(n, &mu, &counter)(ctx)
		}, 0); err != nil {
			t.Fatalf("Spawn() error = %v", err)
		}
	}

	wg.Wait()

	if counter != tasks*n {
		t.Fatalf("counter = %d, want %d", counter, tasks*n)
	}
}

func TestSleepWorkSleepsForRequestedDuration(t *testing.T) {
	s := newTestScheduler(t, 1)

	const d = 25 * time.Millisecond
	start := time.Now()
	done := make(chan struct{})
	if _, err := s.Spawn(func(ctx context.Context) {
		SleepWork(d)(ctx)
		close(done)
	}, 0); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	<-done
	if elapsed := time.Since(start); elapsed < d {
		t.Fatalf("SleepWork returned after %s, want at least %s", elapsed, d)
	}
}
