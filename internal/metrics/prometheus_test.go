package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestNewPrometheusRegistersAllCollectors(t *testing.T) {
	reg := prom.NewRegistry()
	p, err := NewPrometheus("testns", reg, PrometheusOptions{})
	if err != nil {
		t.Fatalf("NewPrometheus() error = %v", err)
	}

	p.TaskSpawned()
	p.TaskFinished()
	p.TaskBlocked("yield")
	p.ReadyQueueDepth(3)
	p.ObserveRunDuration(10 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) != 5 {
		t.Fatalf("Gather() returned %d metric families, want 5", len(families))
	}
}

func TestNewPrometheusSecondCallReusesCollectors(t *testing.T) {
	reg := prom.NewRegistry()
	if _, err := NewPrometheus("dup", reg, PrometheusOptions{}); err != nil {
		t.Fatalf("first NewPrometheus() error = %v", err)
	}
	if _, err := NewPrometheus("dup", reg, PrometheusOptions{}); err != nil {
		t.Fatalf("second NewPrometheus() on the same registry/namespace should recover from AlreadyRegisteredError, got: %v", err)
	}
}

func TestNilPrometheusIsSafe(t *testing.T) {
	var p *Prometheus
	p.TaskSpawned()
	p.TaskFinished()
	p.TaskBlocked("sleep")
	p.ReadyQueueDepth(0)
	p.ObserveRunDuration(time.Second)
}
