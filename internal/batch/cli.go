package batch

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/omahatools/bucketd/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "batch_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the batch classification tool.
func ShowHelp() {
	os.Stdout.WriteString(`Bucketd Batch Classifier
========================

Classifies a CSV of Omaha hole-card combos against a fixed board and
writes one row per combo with all bucket columns.

Usage:
  go run cmd/batch-classify/main.go -input FILE -board CARDS [options]

Options:
  -input string
        Input CSV file; first column holds the combo (e.g. "Ad2c7h9s"),
        remaining columns are ignored. A "combo" header row is skipped.
  -board string
        Board cards shared by every row (e.g. "9c5d3h")
  -output string
        Output CSV file (default: classified_TIMESTAMP.csv)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -log string
        Log file for run output (default: batch_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Classify a preflop range against a flop
  go run cmd/batch-classify/main.go -input range.csv -board 9c5d3h

  # Classify with custom output and workers
  go run cmd/batch-classify/main.go -input range.csv -board 9c5d3h2s -output flop.csv -workers 16
`)
}
