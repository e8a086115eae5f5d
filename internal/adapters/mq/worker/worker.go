// Package worker defines worker contracts for asynchronous classification and
// tally updates.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/internal/domain/model"
	"github.com/omahatools/bucketd/pkg/logger"
	"github.com/omahatools/bucketd/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 20 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Hand abstracts what workers read off the queue.
// Using the model.Hand type for consistency.
type Hand = model.Hand

// Recorder adds a classified hand to the tally.
type Recorder interface {
	Record(ctx context.Context, v buckets.Vector) error
}

// Classifier computes the bucket vector for a hand.
type Classifier interface {
	Classify(ctx context.Context, hole, board string) (buckets.Vector, error)
}

// Queue defines how workers receive hands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Hand
}

// Worker processes hands and writes tally updates using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining hands before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing hands.
type InMemoryWorker struct {
	queue      Queue
	classifier Classifier
	recorder   Recorder
	name       string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, classifier Classifier, recorder Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      queue,
		classifier: classifier,
		recorder:   recorder,
		name:       "worker", // default name
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"), // will be updated by options
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	handChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case h, ok := <-handChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processHand(ctx, h); err != nil {
				w.logger.Error(ctx, "error processing hand", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processHand classifies a single hand and records the result.
func (w *InMemoryWorker) processHand(ctx context.Context, h Hand) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	classifyStart := time.Now()
	vector, err := w.classifier.Classify(ctx, h.Hole, h.Board)
	metrics.RecordClassifyLatency(float64(time.Since(classifyStart).Milliseconds()))

	if err != nil {
		metrics.RecordClassifyError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "classify_error")
		metrics.RecordErrorByType("classify_error", "high")
		w.logger.Error(ctx, "classification failed for hand",
			logger.String("rowID", h.RowID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to classify hand %s: %w", h.RowID, err)
	}

	if err := w.recorder.Record(ctx, vector); err != nil {
		metrics.RecordTallyError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "tally_error")
		metrics.RecordErrorByType("tally_error", "high")
		w.logger.Error(ctx, "tally update failed for hand",
			logger.String("rowID", h.RowID),
			logger.Error(err),
		)
		return fmt.Errorf("tally update failed: %w", err)
	}

	metrics.RecordTallyRecord()
	metrics.RecordHandProcessed()

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers    []*InMemoryWorker
	queue      Queue
	classifier Classifier
	recorder   Recorder

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Metrics tracking
	processedCount    int64
	lastProcessedTime time.Time

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, classifier Classifier, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:           make([]*InMemoryWorker, workerCount),
		queue:             queue,
		classifier:        classifier,
		recorder:          recorder,
		shutdown:          make(chan struct{}),
		done:              make(chan struct{}),
		lastProcessedTime: time.Now(),
		logger:            logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			classifier,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)
	metrics.UpdateWorkerIdleCount(0)
	metrics.UpdateWorkerMessagesPerSecond(0.0)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}

	go p.startMetricsUpdater(ctx)
}

// startMetricsUpdater starts a background goroutine that updates worker metrics.
func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.updateMetrics()
		}
	}
}

// updateMetrics updates worker-related metrics.
func (p *Pool) updateMetrics() {
	now := time.Now()
	timeDiff := now.Sub(p.lastProcessedTime).Seconds()
	if timeDiff > 0 {
		metrics.UpdateWorkerMessagesPerSecond(float64(p.processedCount) / timeDiff)
	}

	p.processedCount = 0
	p.lastProcessedTime = now
}

// RecordProcessedMessage increments the processed message count.
func (p *Pool) RecordProcessedMessage() {
	p.processedCount++
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so workers drain the remaining hands and stop.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
