// Package repository defines the bucket tally store interface and errors.
package repository

import "time"

// Option applies a configuration option to the TallyStore.
type Option func(*TallyStore)

// WithSnapshotInterval sets how often the ranking snapshot is rebuilt.
func WithSnapshotInterval(interval time.Duration) Option {
	return func(s *TallyStore) {
		if interval > 0 {
			s.snapshotInterval = interval
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *TallyStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}
