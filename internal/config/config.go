// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"

	"github.com/okian/mentorank/internal/domain/reputation"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory recompute event queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of recompute workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxTopLimit caps GET /mentors?limit.
	MaxTopLimit int `koanf:"max_top_limit"`

	// Reputation holds the scoring parameters the engine runs with.
	Reputation reputation.Params `koanf:"reputation"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:    "info",
		Addr:        ":9080",
		QueueSize:   100_000,
		WorkerCount: runtime.NumCPU() * 4,
		DedupeSize:  500_000,
		MaxTopLimit: 100,
		Reputation:  reputation.DefaultParams(),
	}
	return c
}
