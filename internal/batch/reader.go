package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/omahatools/bucketd/pkg/logger"
)

// readRows reads combos from the input CSV. The first column of each record
// is the combo; any extra columns (weights, tags) are ignored. A header row
// whose first field is "combo" is skipped.
func readRows(ctx context.Context, config *Config, stats *Stats) ([]Row, error) {
	logger.Get().Info(ctx, "reading combos", logger.String("inputFile", config.InputFile))

	file, err := os.Open(config.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close input file", logger.Error(err))
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // column counts may vary per row
	reader.TrimLeadingSpace = true

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during read: %w", err)
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		combo := strings.TrimSpace(record[0])
		if combo == "" {
			continue
		}
		if len(rows) == 0 && strings.EqualFold(combo, "combo") {
			continue // header row
		}
		rows = append(rows, Row{
			RowID: uuid.NewString(),
			Combo: combo,
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no combos found in %s", config.InputFile)
	}

	stats.RowsRead = len(rows)
	logger.Get().Info(ctx, "read combos successfully", logger.Int("count", len(rows)))

	return rows, nil
}
