package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/omahatools/bucketd/pkg/logger"
)

// Run executes a complete batch classification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting batch classification",
		logger.String("inputFile", config.InputFile),
		logger.String("board", config.Board),
		logger.String("outputFile", config.OutputFile),
		logger.Int("workers", config.Workers),
		logger.Any("verbose", config.Verbose))

	if config.Board == "" {
		return fmt.Errorf("board is required")
	}
	if config.InputFile == "" {
		return fmt.Errorf("input file is required")
	}

	// Step 1: Read combos
	rows, err := readRows(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("reading combos failed: %w", err)
	}

	// Step 2: Classify concurrently
	results, err := classifyRows(ctx, config, rows, stats)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	// Step 3: Write output CSV
	if err := writeResults(ctx, config, results); err != nil {
		return fmt.Errorf("writing results failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "batch classification completed successfully")
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, rowsPerSecond float64

	if stats.RowsRead > 0 {
		successRate = float64(stats.RowsClassified) / float64(stats.RowsRead) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		rowsPerSecond = float64(stats.RowsClassified) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("rowsRead", stats.RowsRead),
		logger.Int("rowsClassified", stats.RowsClassified),
		logger.Int("rowsFailed", stats.RowsFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("rowsPerSecond", rowsPerSecond))
}
