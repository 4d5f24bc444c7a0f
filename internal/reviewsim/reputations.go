package reviewsim

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// retrieveReputations fetches the published profile for every mentor
// concurrently.
func retrieveReputations(ctx context.Context, config *Config, reviews []Review, stats *Stats) ([]Reputation, error) {
	// Extract unique mentor IDs
	seen := make(map[string]struct{})
	mentorIDs := make([]string, 0)
	for _, review := range reviews {
		if _, ok := seen[review.MentorID]; ok {
			continue
		}
		seen[review.MentorID] = struct{}{}
		mentorIDs = append(mentorIDs, review.MentorID)
	}

	log.Printf("retrieving reputations for %d mentors with %d workers...", len(mentorIDs), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Results storage
	reputations := make([]Reputation, len(mentorIDs))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	mentorChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range mentorChan {
				select {
				case <-ctx.Done():
					return
				default:
					mentorID := mentorIDs[index]
					rep, err := retrieveSingleReputation(ctx, client, config.BaseURL, mentorID)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to get reputation for %s: %v", mentorID, err)
						}
					} else {
						reputations[index] = rep
						atomic.AddInt64(&retrieved, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						log.Printf("reputations: %d/%d retrieved (success: %d, failed: %d)",
							total, len(mentorIDs), atomic.LoadInt64(&retrieved), atomic.LoadInt64(&failed))
					}
				}
			}
		}(i)
	}

	// Send mentor indices to workers
	go func() {
		defer close(mentorChan)
		for i := range mentorIDs {
			select {
			case <-ctx.Done():
				return
			case mentorChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Filter out empty entries (failed retrievals)
	validReputations := make([]Reputation, 0, len(reputations))
	for _, rep := range reputations {
		if rep.MentorID != "" { // Empty MentorID indicates failed retrieval
			validReputations = append(validReputations, rep)
		}
	}

	// Update stats
	stats.ReputationsRetrieved = len(validReputations)

	log.Printf(`reputation retrieval completed:
   retrieved: %d
   failed: %d
`, len(validReputations), int(atomic.LoadInt64(&failed)))

	return validReputations, nil
}

// retrieveSingleReputation fetches the published profile for one mentor.
func retrieveSingleReputation(ctx context.Context, client *HTTPClient, baseURL, mentorID string) (Reputation, error) {
	url := fmt.Sprintf("%s/mentors/%s/reputation", baseURL, mentorID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return Reputation{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Reputation{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Reputation{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var rep Reputation
	if err := unmarshalJSON(body, &rep); err != nil {
		return Reputation{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return rep, nil
}

// getTopMentors retrieves the top N mentors.
func getTopMentors(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	log.Printf("getting top %d mentors...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/mentors?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entries []Entry
	if err := unmarshalJSON(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.TopEntries = len(entries)
	log.Printf("retrieved %d top entries", len(entries))

	return entries, nil
}

// countSuspiciousReviews samples the suspicion endpoint for a handful of
// mentors and reports how many flags came back.
func countSuspiciousReviews(ctx context.Context, config *Config, reviews []Review, sample int) int {
	client := newHTTPClient(config.Timeout)

	seen := make(map[string]struct{})
	flagged := 0
	for _, review := range reviews {
		if len(seen) >= sample {
			break
		}
		if _, ok := seen[review.MentorID]; ok {
			continue
		}
		seen[review.MentorID] = struct{}{}

		url := fmt.Sprintf("%s/mentors/%s/suspicion", config.BaseURL, review.MentorID)
		resp, err := client.Get(ctx, url)
		if err != nil {
			continue
		}
		body, err := readResponseBody(resp)
		if err != nil || resp.StatusCode != StatusOK {
			continue
		}

		var flags []map[string]interface{}
		if err := unmarshalJSON(body, &flags); err == nil {
			flagged += len(flags)
		}
	}
	return flagged
}
