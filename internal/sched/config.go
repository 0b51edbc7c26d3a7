package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"

	"lwtgo/internal/metrics"
)

// Config mirrors config.yaml.
type Config struct {
	NumWorkers        int `yaml:"num_workers"`          // 4 by default
	DefaultStackSize  int `yaml:"default_stack_size"`   // bytes; 65536 (64 KiB) by default
	QueueCapacityHint int `yaml:"queue_capacity_hint"`   // advisory only; the gods-backed queue grows on its own

	// Metrics is not part of the YAML document; set it after Load if the
	// caller wants Prometheus instrumentation instead of the Noop default.
	Metrics metrics.Metrics `yaml:"-"`
}

// defaultConfig mirrors the teacher's own defaults-before-override shape.
func defaultConfig() Config {
	return Config{
		NumWorkers:        4,
		DefaultStackSize:  DefaultStackSize,
		QueueCapacityHint: 256,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only. A
// missing or unreadable file silently falls back to defaults, exactly as
// the teacher's Load does.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}
	if cfg.NumWorkers > MaxWorkers {
		cfg.NumWorkers = MaxWorkers
	}
	if cfg.DefaultStackSize <= 0 {
		cfg.DefaultStackSize = DefaultStackSize
	}
	if cfg.QueueCapacityHint <= 0 {
		cfg.QueueCapacityHint = 256
	}

	return cfg
}
