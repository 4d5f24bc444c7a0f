package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/mentorank/internal/reviewsim"
)

// Default configuration constants.
const (
	defaultNumMentors       = 500
	defaultReviewsPerMentor = 40
	defaultTopN             = 50
	defaultWorkers          = 2 // multiplier for runtime.NumCPU()
	defaultTimeout          = 30 * time.Second
	defaultSimTimeout       = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numMentors = flag.Int("mentors", defaultNumMentors, "Number of mentors to simulate")
		numReviews = flag.Int("reviews", defaultReviewsPerMentor, "Maximum reviews per mentor")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated reviews (default: generated_reviews_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for simulation output (default: sim_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		reviewsim.ShowHelp()
		return
	}

	// Setup logging
	if err := reviewsim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSimTimeout)
	defer cancel()

	// Create simulation configuration
	config := &reviewsim.Config{
		BaseURL:          *baseURL,
		NumMentors:       *numMentors,
		ReviewsPerMentor: *numReviews,
		TopN:             *topN,
		Workers:          *workers,
		Timeout:          *timeout,
		OutputFile:       *outputFile,
		LogFile:          *logFile,
		Verbose:          *verbose,
	}

	// Run the simulation
	if err := reviewsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
