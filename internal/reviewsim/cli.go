package reviewsim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/mentorank/pkg/logger"
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
		logFile = "sim_log_" + timestamp + ".log"
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

// ShowHelp prints usage information for the review simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mentorank Review Simulation Tool
================================

A concurrent tool for exercising the mentor reputation service with
realistic review traffic.

Usage:
  go run cmd/reviewsim/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -mentors int
        Number of mentors to simulate (default 500)
  -reviews int
        Maximum reviews per mentor (default 40)
  -top int
        Number of top entries to fetch (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated reviews (default: generated_reviews_TIMESTAMP.json)
  -log string
        Log file for simulation output (default: sim_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/reviewsim/main.go

  # Simulate with custom parameters
  go run cmd/reviewsim/main.go -mentors 2000 -reviews 60 -workers 16

  # Simulate with verbose output against a remote host
  go run cmd/reviewsim/main.go -verbose -url http://localhost:8080
`)
}
