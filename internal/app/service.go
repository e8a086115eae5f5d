// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"

	handqueue "github.com/omahatools/bucketd/internal/adapters/mq/queue"
	workerpool "github.com/omahatools/bucketd/internal/adapters/mq/worker"
	repository "github.com/omahatools/bucketd/internal/adapters/repository"
	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/internal/domain/memo"
	"github.com/omahatools/bucketd/internal/domain/model"
	"github.com/omahatools/bucketd/internal/domain/types"
	"github.com/omahatools/bucketd/pkg/logger"
	"github.com/omahatools/bucketd/pkg/metrics"
)

// memoClassifier layers the result cache over the bucket engine.
type memoClassifier struct {
	engine buckets.Classifier
	cache  memo.Memoizer
}

func (c *memoClassifier) Classify(ctx context.Context, hole, board string) (buckets.Vector, error) {
	key := memo.Key(hole, board)
	if v, ok := c.cache.Get(ctx, key); ok {
		metrics.RecordMemoHit()
		return v, nil
	}
	metrics.RecordMemoMiss()

	v, err := c.engine.Classify(ctx, hole, board)
	if err != nil {
		return buckets.Vector{}, err
	}
	c.cache.Put(ctx, key, v)
	metrics.UpdateMemoSize(c.cache.Size())
	return v, nil
}

// Service implements the API dependencies for the classification system.
type Service struct {
	mu sync.RWMutex

	// Core components
	tally      repository.Store
	cache      memo.Memoizer
	handQueue  handqueue.Queue
	classifier buckets.Classifier
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	memoSize    int
	strictInput bool

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the hand queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMemoSize sets the size of the classification result cache.
func WithMemoSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.memoSize = size
		}
	}
}

// WithStrictInput toggles cardinality validation on classification inputs.
func WithStrictInput(strict bool) Option {
	return func(s *Service) {
		s.strictInput = strict
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2, // Default to 2x CPU cores
		queueSize:   100000,               // Default queue size
		memoSize:    50000,                // Default memo cache size
		strictInput: true,
		stopCh:      make(chan struct{}),
		logger:      nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting classification service...")

	s.tally = repository.NewTallyStore(ctx)
	s.cache = memo.NewInMemoryMemo(
		memo.WithMaxSize(s.memoSize),
	)
	s.handQueue = handqueue.NewInMemoryQueue(
		handqueue.WithCapacity(s.queueSize),
		handqueue.WithBufferSize(s.queueSize),
	)
	s.classifier = &memoClassifier{
		engine: buckets.NewEngine(buckets.WithStrictInput(s.strictInput)),
		cache:  s.cache,
	}

	s.workerPool = workerpool.NewPool(s.workerCount, s.handQueue, s.classifier, s.tally)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "classification service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("memoSize", s.memoSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping classification service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if s.tally != nil {
		if closer, ok := s.tally.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	if q, ok := s.handQueue.(*handqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "classification service stopped")
}

// Classify evaluates a hand synchronously, without touching the tally.
func (s *Service) Classify(ctx context.Context, hole, board string) (buckets.Vector, error) {
	return s.classifier.Classify(ctx, hole, board)
}

// Enqueue submits a hand for asynchronous classification and tallying.
func (s *Service) Enqueue(ctx context.Context, h model.Hand) bool {
	s.logger.Debug(ctx, "enqueueing hand",
		logger.String("rowID", h.RowID),
		logger.String("hole", h.Hole),
		logger.String("board", h.Board),
	)

	success := s.handQueue.Enqueue(ctx, h)
	if success {
		metrics.UpdateQueueSize(s.handQueue.Len(ctx))
	}
	return success
}

// TopN returns the top N tally entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	entries, err := s.tally.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	apiEntries := make([]types.Entry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = types.Entry{
			Rank:   entry.Rank,
			Bucket: entry.Bucket,
			Count:  entry.Count,
			Share:  entry.Share,
		}
	}

	return apiEntries, nil
}

// Rank returns the rank, count and share for a given bucket name.
func (s *Service) Rank(ctx context.Context, bucket string) (types.Entry, error) {
	entry, err := s.tally.Rank(ctx, bucket)
	if err != nil {
		return types.Entry{}, err
	}

	return types.Entry{
		Rank:   entry.Rank,
		Bucket: entry.Bucket,
		Count:  entry.Count,
		Share:  entry.Share,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"memoSize":    s.memoSize,
	}

	if s.started {
		queueLen := s.handQueue.Len(ctx)
		handsTallied := s.tally.Count(ctx)

		stats["queueLength"] = queueLen
		stats["handsTallied"] = handsTallied
		stats["memoEntries"] = s.cache.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTallyHandsTotal(handsTallied)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the result cache.
func (s *Service) Size() int64 {
	if s.cache == nil {
		return 0
	}
	return s.cache.Size()
}
