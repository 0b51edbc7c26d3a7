package lwt_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"lwtgo/pkg/lwt"
)

func TestNewSchedulerAndSpawn(t *testing.T) {
	s, err := lwt.NewScheduler(2)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.Start()
	defer s.Destroy()

	done := make(chan struct{})
	if _, err := lwt.Spawn(s, func(ctx context.Context) {
		close(done)
	}, 0); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("spawned task never ran")
	}
}

func TestNewSchedulerRejectsBadWorkerCount(t *testing.T) {
	if _, err := lwt.NewScheduler(0); err != lwt.ErrInvalidWorkerCount {
		t.Fatalf("NewScheduler(0) error = %v, want ErrInvalidWorkerCount", err)
	}
}

func TestFacadeYieldJoinSleep(t *testing.T) {
	s, err := lwt.NewScheduler(1)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.Start()
	defer s.Destroy()

	var mu sync.Mutex
	var log []string

	a, err := lwt.Spawn(s, func(ctx context.Context) {
		lwt.Yield(ctx)
		mu.Lock()
		log = append(log, "a")
		mu.Unlock()
	}, 0)
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	done := make(chan struct{})
	if _, err := lwt.Spawn(s, func(ctx context.Context) {
		if err := lwt.Join(ctx, a); err != nil {
			t.Errorf("Join() error = %v", err)
		}
		lwt.Sleep(ctx, 5*time.Millisecond)
		mu.Lock()
		log = append(log, "b")
		mu.Unlock()
		close(done)
	}, 0); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("joiner task never finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("log = %v, want [a b]", log)
	}
}

func TestCurrentOutsideTask(t *testing.T) {
	if _, ok := lwt.Current(context.Background()); ok {
		t.Fatal("Current() outside any task should report ok=false")
	}
}

func TestLoadConfigFallsBackToDefaultsForMissingFile(t *testing.T) {
	cfg := lwt.LoadConfig("/nonexistent/path/to/config.yaml")
	if cfg.NumWorkers <= 0 {
		t.Fatalf("LoadConfig() on a missing file gave NumWorkers = %d, want a positive default", cfg.NumWorkers)
	}
}
