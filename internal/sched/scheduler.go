// internal/sched/scheduler.go

package sched

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"lwtgo/internal/metrics"
	"lwtgo/internal/queue"
)

// MaxWorkers bounds the worker pool size a Scheduler can be created with.
const MaxWorkers = 64

// Scheduler owns the ready queue, the worker pool, and every piece of
// state the cooperative API (Yield/Join/Sleep/Current) needs to touch
// under a single mutex, per spec §3/§5.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	readyQ  *queue.ReadyQueue
	running bool
	nextID  uint64

	numWorkers  int
	workerIDs   []int
	currentTask []*Task // per-worker "current" slot, index by worker id
	wg          sync.WaitGroup

	defaultStackSize int
	metrics          metrics.Metrics

	statusCh  chan StatusEvent
	csvCloser func()
}

// New creates a Scheduler per cfg. It validates the worker count but does
// not start any worker; call Start for that.
func New(cfg Config) (*Scheduler, error) {
	if cfg.NumWorkers < 1 || cfg.NumWorkers > MaxWorkers {
		return nil, ErrInvalidWorkerCount
	}

	stackSize := cfg.DefaultStackSize
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.Noop{}
	}

	s := &Scheduler{
		readyQ:           queue.New(),
		nextID:           1,
		numWorkers:       cfg.NumWorkers,
		workerIDs:        make([]int, cfg.NumWorkers),
		currentTask:      make([]*Task, cfg.NumWorkers),
		defaultStackSize: stackSize,
		metrics:          m,
		statusCh:         make(chan StatusEvent, 256),
	}
	s.cond = sync.NewCond(&s.mu)
	for i := 0; i < cfg.NumWorkers; i++ {
		s.workerIDs[i] = i
	}
	return s, nil
}

// Start is idempotent when already running: it spawns NumWorkers worker
// goroutines, each bound to the scheduler pointer it needs (fixing the
// source's unassigned-scheduler-local bug called out in spec §9) and to
// its own stable id.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	for _, id := range s.workerIDs {
		s.wg.Add(1)
		go func(id int) {
			defer s.wg.Done()
			s.workerLoop(id)
		}(id)
	}
}

// Stop is idempotent when not running: it flips running to false,
// broadcasts so every worker re-checks the predicate, and waits for all
// worker goroutines to exit. Tasks still queued remain valid objects
// owned by the caller; tasks that never suspend after Stop keep their
// worker busy forever, exactly as spec §5 documents.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cond.Broadcast()
	s.mu.Unlock()

	s.emit(StatusEvent{Time: time.Now(), Kind: StatusStop})
	s.wg.Wait()
}

// Destroy implies Stop, then releases the scheduler's own resources. Task
// objects left in the queue or otherwise still referenced by the caller
// remain the caller's responsibility, per spec §4.5.
func (s *Scheduler) Destroy() {
	s.Stop()
	s.readyQ.Destroy()
	if s.csvCloser != nil {
		s.csvCloser()
		s.csvCloser = nil
	}
	close(s.statusCh)
}

// Spawn creates a task in state NEW and immediately adds it to the ready
// queue, combining spec's task-init and add_task in the single operation
// the external API table (§6) calls "spawn task". stackSize of 0 uses
// DefaultStackSize.
func (s *Scheduler) Spawn(entry EntryFunc, stackSize int) (*Task, error) {
	t, err := newTask(s, entry, stackSize)
	if err != nil {
		return nil, err
	}
	if err := s.AddTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

// AddTask transitions t to READY, pushes it onto the ready queue, and
// signals a worker. It is safe to call from outside any task (spec §4.5).
func (s *Scheduler) AddTask(t *Task) error {
	if t == nil {
		return ErrNilTask
	}

	s.mu.Lock()
	if t.state == StateReady || t.state == StateRunning {
		s.mu.Unlock()
		return ErrTaskAlreadyAdded
	}
	t.state = StateReady
	s.readyQ.PushLocked(t)
	depth := s.readyQ.SizeLocked()
	s.mu.Unlock()

	s.cond.Signal()
	s.metrics.TaskSpawned()
	s.metrics.ReadyQueueDepth(depth)
	s.emit(StatusEvent{Time: time.Now(), Kind: StatusEnqueue, TaskID: t.id})
	return nil
}

// workerLoop is the per-OS-thread dispatcher of spec §4.4. runtime.LockOSThread
// binds this goroutine to one OS thread for its entire lifetime, so worker
// id really does correspond to one operating-system worker thread.
func (s *Scheduler) workerLoop(id int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		s.mu.Lock()
		for s.running && s.readyQ.EmptyLocked() {
			s.cond.Wait()
		}
		if !s.running {
			s.mu.Unlock()
			return
		}

		v, _ := s.readyQ.PopLocked()
		t := v.(*Task)
		t.state = StateRunning
		s.currentTask[id] = t
		depth := s.readyQ.SizeLocked()
		s.mu.Unlock()

		s.metrics.ReadyQueueDepth(depth)
		s.emit(StatusEvent{Time: time.Now(), Kind: StatusDispatch, TaskID: t.id, WorkerID: id})

		start := time.Now()
		t.resume <- struct{}{} // context switch: dispatch context -> task
		<-t.suspend             // context switch: task -> dispatch context
		s.metrics.ObserveRunDuration(time.Since(start))

		s.mu.Lock()
		s.currentTask[id] = nil
		s.mu.Unlock()
	}
}

// CurrentOnWorker returns the task currently RUNNING on the given worker
// id, or nil. It exists for diagnostics/tests; cooperative primitives use
// Current(ctx) instead.
func (s *Scheduler) CurrentOnWorker(id int) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.currentTask) {
		return nil
	}
	return s.currentTask[id]
}

// ReadyLen returns the current ready-queue depth.
func (s *Scheduler) ReadyLen() int {
	return s.readyQ.Size()
}

func (s *Scheduler) emit(ev StatusEvent) {
	select {
	case s.statusCh <- ev:
	default:
		// The event stream is a best-effort observability channel, not a
		// correctness mechanism; a full buffer drops the event rather than
		// blocking a worker.
	}
}

// StatusChannel exposes the scheduler's event stream for optional
// consumers (logging, CSV export, tests), the way the teacher's
// StatusChannel exposed CFS events.
func (s *Scheduler) StatusChannel() <-chan StatusEvent { return s.statusCh }

func (s *Scheduler) String() string {
	return fmt.Sprintf("Scheduler{workers=%d running=%v readyLen=%d}", s.numWorkers, s.running, s.ReadyLen())
}
