package metrics

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusOptions controls collector configuration for Prometheus.
type PrometheusOptions struct {
	DurationBuckets []float64
}

// Prometheus adapts Metrics to a set of registered Prometheus collectors,
// the way Swind-go-task-runner's observability/prometheus package adapts
// core.Metrics.
type Prometheus struct {
	spawned     prom.Counter
	finished    prom.Counter
	blocked     *prom.CounterVec
	queueDepth  prom.Gauge
	runDuration prom.Histogram
}

var _ Metrics = (*Prometheus)(nil)

// NewPrometheus creates and registers collectors for namespace against reg.
// A nil reg falls back to prom.DefaultRegisterer.
func NewPrometheus(namespace string, reg prom.Registerer, opts PrometheusOptions) (*Prometheus, error) {
	if namespace == "" {
		namespace = "lwtgo"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	spawned := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_spawned_total",
		Help:      "Total number of tasks spawned.",
	})
	finished := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_finished_total",
		Help:      "Total number of tasks that reached FINISHED.",
	})
	blocked := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_blocked_total",
		Help:      "Total number of times a task transitioned to BLOCKED, by reason.",
	}, []string{"reason"})
	queueDepth := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "ready_queue_depth",
		Help:      "Current number of tasks waiting on the ready queue.",
	})
	runDuration := prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_run_seconds",
		Help:      "Wall-clock duration of one dispatch-to-suspend run of a task.",
		Buckets:   buckets,
	})

	var err error
	if spawned, err = registerCollector(reg, spawned); err != nil {
		return nil, err
	}
	if finished, err = registerCollector(reg, finished); err != nil {
		return nil, err
	}
	if blocked, err = registerCollector(reg, blocked); err != nil {
		return nil, err
	}
	if queueDepth, err = registerCollector(reg, queueDepth); err != nil {
		return nil, err
	}
	if runDuration, err = registerCollector(reg, runDuration); err != nil {
		return nil, err
	}

	return &Prometheus{
		spawned:     spawned,
		finished:    finished,
		blocked:     blocked,
		queueDepth:  queueDepth,
		runDuration: runDuration,
	}, nil
}

func (p *Prometheus) TaskSpawned() {
	if p == nil {
		return
	}
	p.spawned.Inc()
}

func (p *Prometheus) TaskFinished() {
	if p == nil {
		return
	}
	p.finished.Inc()
}

func (p *Prometheus) TaskBlocked(reason string) {
	if p == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	p.blocked.WithLabelValues(reason).Inc()
}

func (p *Prometheus) ReadyQueueDepth(depth int) {
	if p == nil {
		return
	}
	p.queueDepth.Set(float64(depth))
}

func (p *Prometheus) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
