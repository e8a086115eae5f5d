package batch

import (
	"time"

	"github.com/omahatools/bucketd/internal/domain/buckets"
)

// Config holds configuration for a batch classification run
type Config struct {
	InputFile  string // CSV of hole-card combos
	Board      string // Board cards shared by every row
	OutputFile string // Output CSV for classified rows
	Workers    int    // Number of concurrent workers
	LogFile    string // Log file for run output
	Verbose    bool   // Enable verbose logging
}

// Row represents one combo read from the input CSV
type Row struct {
	RowID string // Generated identifier, used in error reports
	Combo string // Hole cards, e.g. "Ad2c7h9s"
}

// Result pairs a row with its classification outcome
type Result struct {
	Row    Row
	Vector buckets.Vector
	Err    error
}

// Stats holds run statistics
type Stats struct {
	RowsRead       int
	RowsClassified int
	RowsFailed     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
