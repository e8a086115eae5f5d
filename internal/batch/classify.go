package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/pkg/logger"
)

// classifyRows classifies every row against the shared board using a local
// engine fanned across the configured number of workers.
func classifyRows(ctx context.Context, config *Config, rows []Row, stats *Stats) ([]Result, error) {
	logger.Get().Info(ctx, "classifying combos",
		logger.Int("rows", len(rows)),
		logger.String("board", config.Board),
		logger.Int("workers", config.Workers))

	engine := buckets.NewEngine()

	results := make([]Result, len(rows))
	var (
		classified int64
		failed     int64
	)

	// Progress reporting; lastReport holds unix nanos so workers can race on
	// it safely via CompareAndSwap.
	lastReport := time.Now().UnixNano()
	reportInterval := 1 * time.Second

	rowChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range rowChan {
				select {
				case <-ctx.Done():
					return
				default:
					row := rows[index]
					vector, err := engine.Classify(ctx, row.Combo, config.Board)
					results[index] = Result{Row: row, Vector: vector, Err: err}

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("row %s (%s) failed: %v", row.RowID, row.Combo, err)
						}
					} else {
						atomic.AddInt64(&classified, 1)
					}

					now := time.Now().UnixNano()
					prev := atomic.LoadInt64(&lastReport)
					if now-prev >= int64(reportInterval) &&
						atomic.CompareAndSwapInt64(&lastReport, prev, now) {
						done := atomic.LoadInt64(&classified) + atomic.LoadInt64(&failed)
						log.Printf("progress: %d/%d classified (failed: %d)",
							done, len(rows), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(rowChan)
		for i := range rows {
			select {
			case <-ctx.Done():
				return
			case rowChan <- i:
			}
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled during classification: %w", err)
	}

	stats.RowsClassified = int(atomic.LoadInt64(&classified))
	stats.RowsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "classification completed",
		logger.Int("classified", stats.RowsClassified),
		logger.Int("failed", stats.RowsFailed))

	return results, nil
}
