package reputation

import (
	"time"

	"github.com/okian/mentorank/internal/domain/model"
)

// suspicionRecencyWindow is the age under which a review is considered too
// fresh to trust.
const suspicionRecencyWindow = 60 * time.Minute

// SuspicionReason names a heuristic rule that matched a review.
type SuspicionReason string

// Suspicion rules. Any single match flags the review.
const (
	ReasonUniformExtreme    SuspicionReason = "uniform_extreme_scores"
	ReasonTooRecent         SuspicionReason = "too_recent"
	ReasonDuplicateReviewer SuspicionReason = "duplicate_reviewer"
	ReasonSameDayRepeat     SuspicionReason = "same_day_repeat"
)

// SuspicionReasons evaluates the advisory fraud heuristics for a single
// review. history is the mentor's full review list, including the review
// under evaluation. The detector is read-only: it never feeds the rating,
// level or badge computation.
func SuspicionReasons(review model.Review, history []model.Review, now time.Time) []SuspicionReason {
	var reasons []SuspicionReason

	if uniformExtreme(review) {
		reasons = append(reasons, ReasonUniformExtreme)
	}
	if now.Sub(review.CreatedAt) < suspicionRecencyWindow {
		reasons = append(reasons, ReasonTooRecent)
	}

	var byReviewer, sameDay int
	day := calendarDay(review.CreatedAt)
	for _, r := range history {
		if r.ReviewerID != review.ReviewerID {
			continue
		}
		byReviewer++
		if calendarDay(r.CreatedAt) == day {
			sameDay++
		}
	}
	if byReviewer > 1 {
		reasons = append(reasons, ReasonDuplicateReviewer)
	}
	if sameDay > 1 {
		reasons = append(reasons, ReasonSameDayRepeat)
	}

	return reasons
}

// Suspect reports whether any suspicion heuristic matches the review.
func Suspect(review model.Review, history []model.Review, now time.Time) bool {
	return len(SuspicionReasons(review, history, now)) > 0
}

// uniformExtreme matches reviews where all three sub-scores sit at the
// scale maximum or all at the minimum.
func uniformExtreme(r model.Review) bool {
	allMax := r.Friendliness == maxSubScore && r.Knowledge == maxSubScore && r.Communication == maxSubScore
	allMin := r.Friendliness == minSubScore && r.Knowledge == minSubScore && r.Communication == minSubScore
	return allMax || allMin
}

// calendarDay compares creation instants by calendar date, not by a 24h
// rolling window.
func calendarDay(t time.Time) string {
	return t.Format("2006-01-02")
}
