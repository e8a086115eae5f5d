// Package repository defines the bucket tally store interface and errors.
package repository

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/pkg/metrics"
)

// Lock-free, in-memory Store implementation.
//
// The bucket contract is a small fixed enumeration, so the tally is a flat
// array of atomic counters. Ordering is computed on read: count DESC, then
// bucket position ASC (deterministic).

// Snapshot represents an immutable snapshot of the tally state.
type Snapshot struct {
	// Rank in O(1) for reads.
	RankByBucket map[string]int

	// Full ranking, sorted descending by count.
	Entries []Entry

	// Hands recorded when the snapshot was taken.
	Hands uint64
}

// TallyStore aggregates classification vectors into per-bucket counters.
type TallyStore struct {
	counts [buckets.NumBuckets]atomic.Uint64
	hands  atomic.Uint64

	snapshotInterval      time.Duration // how often the ranking snapshot is rebuilt
	metricsUpdateInterval time.Duration // how often gauges are refreshed

	// snapshot is an atomic pointer to the last published Snapshot.
	snapshot atomic.Pointer[Snapshot]

	// Background goroutine management.
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTallyStore constructs a tally store with configuration options.
func NewTallyStore(ctx context.Context, opts ...Option) *TallyStore {
	s := &TallyStore{
		snapshotInterval:      1 * time.Second,
		metricsUpdateInterval: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startPeriodicSnapshots(ctx)
	s.startMetricsUpdater(ctx)

	return s
}

// startPeriodicSnapshots starts a background goroutine that publishes
// snapshots at the configured interval.
func (s *TallyStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishSnapshot()
			}
		}
	}()
}

// publishSnapshot rebuilds and publishes a new snapshot.
func (s *TallyStore) publishSnapshot() {
	start := time.Now()

	entries := s.ranking()
	rankByBucket := make(map[string]int, len(entries))
	for _, e := range entries {
		rankByBucket[e.Bucket] = e.Rank
	}

	s.snapshot.Store(&Snapshot{
		RankByBucket: rankByBucket,
		Entries:      entries,
		Hands:        s.hands.Load(),
	})

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordTallySnapshotRebuildDuration(ms)
	metrics.UpdateTallySnapshotLastUnix(float64(time.Now().Unix()))
	metrics.IncrementTallySnapshotCount()
}

// LastSnapshot returns the most recently published snapshot, or nil when no
// snapshot has been taken yet.
func (s *TallyStore) LastSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// Close gracefully shuts down the background goroutines.
func (s *TallyStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	return nil
}

// Record implements Store.Record in O(k) for k fired buckets.
func (s *TallyStore) Record(ctx context.Context, v buckets.Vector) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordTallyUpdateLatency(float64(latency))
	}()

	for i := range v {
		if v[i] != 0 {
			s.counts[i].Add(1)
		}
	}
	s.hands.Add(1)
	return nil
}

// Rank returns the current rank, count and share for a bucket wire name.
func (s *TallyStore) Rank(ctx context.Context, bucket string) (Entry, error) {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordTallyQueryLatency(float64(latency))
	}()

	if _, ok := buckets.Lookup(bucket); !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}

	for _, e := range s.ranking() {
		if e.Bucket == bucket {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// TopN returns the top N buckets ordered by count desc.
func (s *TallyStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordTallyQueryLatency(float64(latency))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	entries := s.ranking()
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n], nil
}

// Count returns the number of hands recorded so far.
func (s *TallyStore) Count(ctx context.Context) int {
	return int(s.hands.Load())
}

// Reset zeroes all counters.
func (s *TallyStore) Reset(ctx context.Context) {
	for i := range s.counts {
		s.counts[i].Store(0)
	}
	s.hands.Store(0)
}

// ranking builds the full sorted ranking from the live counters.
// The counters are read without a lock; a Record racing with a read may be
// reflected partially, which is acceptable for a monotonically growing tally.
func (s *TallyStore) ranking() []Entry {
	hands := s.hands.Load()
	entries := make([]Entry, 0, buckets.NumBuckets)
	for i := buckets.Bucket(0); i < buckets.NumBuckets; i++ {
		count := s.counts[i].Load()
		share := 0.0
		if hands > 0 {
			share = float64(count) / float64(hands)
		}
		entries = append(entries, Entry{
			Bucket: i.String(),
			Count:  count,
			Share:  share,
		})
	}

	sortEntries(entries)
	assignRanksWithTies(entries)
	return entries
}

// startMetricsUpdater starts a background goroutine that updates tally metrics.
func (s *TallyStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

// updateMetrics refreshes the tally gauges.
func (s *TallyStore) updateMetrics() {
	metrics.UpdateTallyHandsTotal(int(s.hands.Load()))
	for i := buckets.Bucket(0); i < buckets.NumBuckets; i++ {
		metrics.UpdateTallyBucketCount(i.String(), s.counts[i].Load())
	}
}

// sortEntries orders by count descending with bucket position as tie-breaker,
// so equal counts always list in contract order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		bi, _ := buckets.Lookup(entries[i].Bucket)
		bj, _ := buckets.Lookup(entries[j].Bucket)
		return bi < bj
	})
}

// assignRanksWithTies assigns ranks with proper tie handling.
// Buckets with the same count share a rank, and the next distinct count
// takes the following consecutive rank.
func assignRanksWithTies(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameCount := 1
		for j := i + 1; j < len(entries) && entries[j].Count == entries[i].Count; j++ {
			entries[j].Rank = currentRank
			sameCount++
		}

		currentRank++
		i += sameCount - 1
	}
}
