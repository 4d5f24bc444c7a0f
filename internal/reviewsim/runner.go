package reviewsim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/mentorank/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete review simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting mentorank review simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("mentors", config.NumMentors),
		logger.Int("reviewsPerMentor", config.ReviewsPerMentor),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate reviews
	reviews, err := generateReviews(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("review generation failed: %w", err)
	}

	// Step 3: Submit reviews concurrently
	if err := submitReviews(ctx, config, reviews, stats); err != nil {
		return fmt.Errorf("review submission failed: %w", err)
	}

	// Step 4: Wait for recomputation
	logger.Get().Info(ctx, "waiting for recomputes to drain")
	time.Sleep(ProcessingDelay)

	// Step 5: Retrieve reputations concurrently
	reputations, err := retrieveReputations(ctx, config, reviews, stats)
	if err != nil {
		return fmt.Errorf("reputation retrieval failed: %w", err)
	}

	// Step 6: Get top mentors
	topMentors, err := getTopMentors(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("top mentor retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(ctx, config, reviews, reputations, topMentors, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save reviews to file
	if err := saveReviewsToFile(ctx, config, reviews); err != nil {
		logger.Get().Warn(ctx, "failed to save reviews to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveReviewsToFile saves the generated reviews to a JSON file.
func saveReviewsToFile(ctx context.Context, config *Config, reviews []Review) error {
	if len(reviews) == 0 {
		return fmt.Errorf("no reviews to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_reviews_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write reviews to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, review := range reviews {
		jsonData, err := marshalJSON(review)
		if err != nil {
			return fmt.Errorf("failed to marshal review %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write review %d: %w", i, err)
		}

		// Add comma except for last review
		if i < len(reviews)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "reviews saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate, reviewsPerSecond float64

	if stats.ReviewsSubmitted > 0 {
		successRate = float64(stats.ReviewsSuccessful) / float64(stats.ReviewsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		reviewsPerSecond = float64(stats.ReviewsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("reviewsGenerated", stats.ReviewsGenerated),
		logger.Int("reviewsSubmitted", stats.ReviewsSubmitted),
		logger.Int("reviewsSuccessful", stats.ReviewsSuccessful),
		logger.Int("reviewsDuplicate", stats.ReviewsDuplicate),
		logger.Int("reviewsFailed", stats.ReviewsFailed),
		logger.Int("reputationsRetrieved", stats.ReputationsRetrieved),
		logger.Int("topEntries", stats.TopEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("reviewsPerSecond", reviewsPerSecond))
}
