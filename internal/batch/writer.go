package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// writeResults writes one CSV row per successfully classified combo. The
// header is "combo" followed by every bucket name in vector order; failed
// rows are skipped and reported by row id.
func writeResults(ctx context.Context, config *Config, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to write")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "classified_" + timestamp + ".csv"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	writer := csv.NewWriter(file)

	header := append([]string{"combo"}, buckets.Names()...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, 1+buckets.NumBuckets)
	for _, result := range results {
		if result.Err != nil {
			logger.Get().Warn(ctx, "skipping failed row",
				logger.String("rowID", result.Row.RowID),
				logger.String("combo", result.Row.Combo),
				logger.Error(result.Err))
			continue
		}
		record[0] = result.Row.Combo
		for i, v := range result.Vector.Ints() {
			record[1+i] = strconv.Itoa(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %s: %w", result.Row.RowID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Get().Info(ctx, "results saved to file", logger.String("filename", filename))
	return nil
}
