package reviewsim

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// Rating bound: six weighted components whose weights sum to 1.01, each
// component at most 6.
const maxPossibleRating = 6.0 * 1.01

// Default number of mentors sampled for suspicion flags.
const suspicionSampleSize = 25

// verifyResults verifies the consistency of reputations and the top listing.
func verifyResults(ctx context.Context, config *Config, reviews []Review, reputations []Reputation, topMentors []Entry, stats *Stats) error {
	log.Println("verifying results...")

	if len(reputations) == 0 {
		return fmt.Errorf("no reputations to verify")
	}

	// Sort reputations by rating (descending) to get the best mentors
	sorted := make([]Reputation, len(reputations))
	copy(sorted, reputations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	// Every published rating must sit inside the reachable range
	for _, rep := range reputations {
		if rep.Rating < 0 || rep.Rating > maxPossibleRating {
			return fmt.Errorf("mentor %s has rating %.4f outside [0, %.4f]",
				rep.MentorID, rep.Rating, maxPossibleRating)
		}
		if rep.Level < 1 || rep.Level > 4 {
			return fmt.Errorf("mentor %s has level %d outside [1, 4]", rep.MentorID, rep.Level)
		}
	}
	log.Println("rating and level bounds verified")

	// Verify top-listing consistency if we have listing data
	if len(topMentors) > 0 {
		if err := verifyTopConsistency(sorted, topMentors); err != nil {
			log.Printf("top listing consistency warning: %v", err)
		} else {
			log.Println("top listing consistency verified")
		}
	}

	// Sample the suspicion endpoint
	flagged := countSuspiciousReviews(ctx, config, reviews, suspicionSampleSize)
	log.Printf("suspicion sample: %d flagged reviews across %d mentors", flagged, suspicionSampleSize)

	// Display the best mentors
	displayTopMentors(sorted, topMentors, config.Verbose)

	log.Println("result verification completed")
	return nil
}

// verifyTopConsistency checks if the top listing matches the best fetched
// reputations.
func verifyTopConsistency(sorted []Reputation, topMentors []Entry) error {
	if len(topMentors) == 0 {
		return fmt.Errorf("empty top listing")
	}

	// The listing's first entry must carry the best published rating
	best := sorted[0]
	top := topMentors[0]

	if top.Rating != best.Rating {
		return fmt.Errorf("top listing rating (%.3f) does not match best fetched rating (%.3f)",
			top.Rating, best.Rating)
	}

	// Check if the listing is properly sorted
	for i := 1; i < len(topMentors); i++ {
		if topMentors[i].Rating > topMentors[i-1].Rating {
			return fmt.Errorf("top listing not properly sorted: entry %d has higher rating than entry %d",
				i, i-1)
		}
		if topMentors[i].Rank != topMentors[i-1].Rank+1 {
			return fmt.Errorf("top listing ranks not contiguous at entry %d", i)
		}
	}

	return nil
}

// displayTopMentors shows the best mentors from reputations and the listing.
func displayTopMentors(sorted []Reputation, topMentors []Entry, verbose bool) {
	topN := 10
	if len(sorted) < topN {
		topN = len(sorted)
	}

	log.Printf("top %d mentors by fetched reputation:", topN)
	for i := 0; i < topN; i++ {
		rep := sorted[i]
		log.Printf("   %d. %s - rating: %.2f, level: %d (%s), reviews: %d, badges: %d",
			i+1, rep.MentorID, rep.Rating, rep.Level, rep.LevelTitle, rep.TotalReviews, len(rep.Badges))
	}

	if len(topMentors) > 0 {
		listTopN := topN
		if len(topMentors) < listTopN {
			listTopN = len(topMentors)
		}

		log.Printf("top %d mentors from listing:", listTopN)
		for i := 0; i < listTopN; i++ {
			entry := topMentors[i]
			log.Printf("   %d. %s - rating: %.2f, level: %d", entry.Rank, entry.MentorID, entry.Rating, entry.Level)
		}
	}

	if verbose && len(sorted) > 0 {
		avgRating := calculateAverageRating(sorted)
		maxRating := sorted[0].Rating
		minRating := sorted[len(sorted)-1].Rating

		levelCounts := make(map[int]int)
		for _, rep := range sorted {
			levelCounts[rep.Level]++
		}

		log.Printf(`rating statistics:
   average: %.3f
   maximum: %.3f
   minimum: %.3f
   levels: 1=%d 2=%d 3=%d 4=%d
`, avgRating, maxRating, minRating,
			levelCounts[1], levelCounts[2], levelCounts[3], levelCounts[4])
	}
}

// calculateAverageRating calculates the average rating across reputations.
func calculateAverageRating(reputations []Reputation) float64 {
	if len(reputations) == 0 {
		return 0
	}

	sum := 0.0
	for _, rep := range reputations {
		sum += rep.Rating
	}

	return sum / float64(len(reputations))
}
