// Package memo caches classification vectors keyed by the raw input strings.
package memo

// Option applies a configuration option to the in-memory memoizer.
type Option func(*inMemoryMemo)

// WithMaxSize sets the maximum number of entries to keep in memory.
// If maxSize > 0: bounded mode with LIFO eviction.
// If maxSize <= 0: unbounded mode (no eviction, no size limit).
func WithMaxSize(maxSize int) Option {
	return func(m *inMemoryMemo) {
		m.maxSize = maxSize
	}
}
