// Package repository defines the bucket tally store interface and errors.
package repository

import (
	"context"

	"github.com/omahatools/bucketd/internal/domain/buckets"
)

// Entry represents one row of the tally ranking.
type Entry struct {
	Rank   int
	Bucket string
	Count  uint64
	Share  float64
}

// Store provides read/write access to the aggregated bucket counts.
type Store interface {
	// Record adds one classified hand to the tally, incrementing the counter
	// of every bucket that fired in the vector.
	Record(ctx context.Context, v buckets.Vector) error

	// Rank returns the current rank, count and share for a bucket wire name.
	// Returns ErrNotFound if the name is not part of the contract.
	Rank(ctx context.Context, bucket string) (Entry, error)

	// TopN returns the top-N buckets ordered by count desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of hands recorded so far.
	Count(ctx context.Context) int

	// Reset zeroes all counters.
	Reset(ctx context.Context)
}
