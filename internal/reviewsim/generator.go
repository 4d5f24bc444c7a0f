package reviewsim

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mentorank/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 10
	maxBackdateDays    = 540 // reviews spread over up to ~18 months
)

// Score scale bounds.
const (
	minScore = 1
	maxScore = 6
)

// Constants for mentor archetype cases.
const (
	caseTopMentor       = 0
	caseSolidMentor     = 1
	caseAverageMentor   = 2
	caseWeakMentor      = 3
	casePolarizing      = 4
	caseFreshMentor     = 5
	caseUniformBooster  = 6
	caseQuietMentor     = 7
	caseImprovingMentor = 8
	caseDecliningMentor = 9
)

// archetype describes the review pattern generated for one mentor.
type archetype struct {
	baseScore   int  // center of the sub-score distribution
	spread      int  // max deviation from the base
	maxReviews  int  // cap on review count for this archetype
	allUniform  bool // every review carries identical sub-scores
	driftPerRev int  // per-review quality drift, oldest to newest
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, bound) using crypto/rand.
func getRandomInt(bound int) int {
	if bound <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	return int(n.Int64())
}

// generateReviews creates reviews for the configured number of mentors.
func generateReviews(ctx context.Context, config *Config, stats *Stats) ([]Review, error) {
	logger.Get().Info(ctx, "generating reviews for unique mentors",
		logger.Int("numMentors", config.NumMentors),
		logger.Int("reviewsPerMentor", config.ReviewsPerMentor),
	)

	reviews := make([]Review, 0, config.NumMentors*config.ReviewsPerMentor/2)

	for i := 0; i < config.NumMentors; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during review generation: %w", ctx.Err())
		default:
		}

		mentorID := "mentor-" + uuid.New().String()
		reviews = append(reviews, generateMentorReviews(i, mentorID, config.ReviewsPerMentor)...)
	}

	stats.ReviewsGenerated = len(reviews)
	logger.Get().Info(ctx, "generated reviews successfully", logger.Int("count", len(reviews)))

	return reviews, nil
}

// generateMentorReviews produces the review history for one mentor according
// to a randomly picked archetype.
func generateMentorReviews(index int, mentorID string, maxPerMentor int) []Review {
	arch := pickArchetype()

	count := arch.maxReviews
	if count > maxPerMentor {
		count = maxPerMentor
	}
	if count > 1 {
		// Vary the actual count so mentor populations straddle the
		// level thresholds.
		count = 1 + getRandomInt(count)
	}

	reviews := make([]Review, 0, count)
	for r := 0; r < count; r++ {
		base := arch.baseScore + arch.driftPerRev*r
		review := Review{
			ReviewID:   "review_" + strconv.Itoa(index) + "_" + strconv.Itoa(r) + "_" + uuid.New().String(),
			MentorID:   mentorID,
			ReviewerID: "reviewer-" + uuid.New().String(),
			TS:         backdatedTimestamp(),
		}
		if arch.allUniform {
			score := clampScore(base)
			review.Friendliness = score
			review.Knowledge = score
			review.Communication = score
		} else {
			review.Friendliness = jitterScore(base, arch.spread)
			review.Knowledge = jitterScore(base, arch.spread)
			review.Communication = jitterScore(base, arch.spread)
		}
		reviews = append(reviews, review)
	}
	return reviews
}

// pickArchetype selects a mentor archetype with crypto/rand.
func pickArchetype() archetype {
	n, _ := rand.Int(rand.Reader, big.NewInt(archetypeDivisor))
	switch n.Int64() {
	case caseTopMentor:
		// Consistently excellent, large history
		return archetype{baseScore: 6, spread: 1, maxReviews: 60}
	case caseSolidMentor:
		// Good with mild variance
		return archetype{baseScore: 5, spread: 1, maxReviews: 40}
	case caseAverageMentor:
		return archetype{baseScore: 4, spread: 2, maxReviews: 25}
	case caseWeakMentor:
		return archetype{baseScore: 2, spread: 1, maxReviews: 15}
	case casePolarizing:
		// Wide spread around the middle
		return archetype{baseScore: 3, spread: 3, maxReviews: 30}
	case caseFreshMentor:
		// Too few reviews to leave level 1
		return archetype{baseScore: 5, spread: 1, maxReviews: 2}
	case caseUniformBooster:
		// Identical extreme sub-scores; should trip the suspicion detector
		return archetype{baseScore: 6, spread: 0, maxReviews: 10, allUniform: true}
	case caseQuietMentor:
		return archetype{baseScore: 4, spread: 1, maxReviews: 8}
	case caseImprovingMentor:
		// Quality rises over the history
		return archetype{baseScore: 2, spread: 1, maxReviews: 20, driftPerRev: 1}
	case caseDecliningMentor:
		return archetype{baseScore: 6, spread: 1, maxReviews: 20, driftPerRev: -1}
	default:
		return archetype{baseScore: 4, spread: 2, maxReviews: 25}
	}
}

// jitterScore applies a bounded random deviation to a base sub-score.
func jitterScore(base, spread int) int {
	if spread <= 0 {
		return clampScore(base)
	}
	delta := getRandomInt(2*spread+1) - spread
	return clampScore(base + delta)
}

func clampScore(s int) int {
	if s < minScore {
		return minScore
	}
	if s > maxScore {
		return maxScore
	}
	return s
}

// backdatedTimestamp returns an RFC3339 timestamp up to maxBackdateDays in
// the past so decay weighting has something to bite on.
func backdatedTimestamp() string {
	daysBack := getRandomInt(maxBackdateDays)
	secondsBack := getRandomInt(86400)
	ts := time.Now().UTC().
		AddDate(0, 0, -daysBack).
		Add(-time.Duration(secondsBack) * time.Second)
	return ts.Format(time.RFC3339)
}
