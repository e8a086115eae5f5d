// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// HandQueueSize bounds the in-memory hand queue.
	HandQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of classification workers.
	WorkerCount int `koanf:"worker_count"`

	// MemoSize sets the size of the classification result cache.
	MemoSize int `koanf:"memo_size"`

	// MaxTallyLimit caps GET /tally?limit.
	MaxTallyLimit int `koanf:"max_tally_limit"`

	// StrictInput toggles cardinality validation on classification inputs.
	StrictInput bool `koanf:"strict_input"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		HandQueueSize: 100_000,
		WorkerCount:   runtime.NumCPU() * 10,
		MemoSize:      500_000,
		MaxTallyLimit: 85,
		StrictInput:   true,
	}
	return c
}
