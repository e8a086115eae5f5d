package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/omahatools/bucketd/internal/batch"
)

// Default configuration constants.
const (
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		inputFile  = flag.String("input", "", "Input CSV file with hole-card combos")
		board      = flag.String("board", "", "Board cards shared by every row (e.g. 9c5d3h)")
		outputFile = flag.String("output", "", "Output CSV file (default: classified_TIMESTAMP.csv)")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		logFile    = flag.String("log", "", "Log file for run output (default: batch_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		batch.ShowHelp()
		return
	}

	// Setup logging
	if err := batch.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &batch.Config{
		InputFile:  *inputFile,
		Board:      *board,
		OutputFile: *outputFile,
		Workers:    *workers,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the classification
	if err := batch.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Batch classification failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
