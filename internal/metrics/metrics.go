// Package metrics defines the scheduler's optional instrumentation
// surface. A Scheduler depends only on the Metrics interface; callers
// that don't care about observability get Noop for free.
package metrics

import "time"

// Metrics receives scheduler lifecycle events. Every method must be
// nil-receiver safe since Noop is the zero value.
type Metrics interface {
	TaskSpawned()
	TaskFinished()
	TaskBlocked(reason string)
	ReadyQueueDepth(depth int)
	ObserveRunDuration(d time.Duration)
}

// Noop discards every event. It is the default Scheduler.Metrics.
type Noop struct{}

func (Noop) TaskSpawned()                     {}
func (Noop) TaskFinished()                    {}
func (Noop) TaskBlocked(reason string)        {}
func (Noop) ReadyQueueDepth(depth int)        {}
func (Noop) ObserveRunDuration(d time.Duration) {}

var _ Metrics = Noop{}
