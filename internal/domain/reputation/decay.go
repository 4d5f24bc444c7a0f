package reputation

import (
	"math"
	"time"

	"github.com/okian/mentorank/internal/domain/model"
)

// Review scale bounds and time conversion constants.
const (
	minSubScore = 1
	maxSubScore = 6

	// scaleMax is the top of the rating scale; per-review averages and the
	// final rating live on [minSubScore, scaleMax].
	scaleMax = float64(maxSubScore)

	hoursPerMonth = 24 * 30 // months are 30-day months throughout
)

// reviewAverage is the plain mean of a review's three sub-scores.
func reviewAverage(r model.Review) float64 {
	return float64(r.Friendliness+r.Knowledge+r.Communication) / 3
}

// monthsBetween returns the elapsed time from from to to in 30-day months.
func monthsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / hoursPerMonth
}

// DecayWeightedAverage collapses all reviews into one exponentially
// decay-weighted mean on the 1..6 scale. Recent reviews carry weight close
// to 1; a review DecayHalfLifeMonths old carries weight 1/e.
//
// Returns 0 for an empty review set; callers must special-case empty before
// interpreting the result (the zero-state short-circuits earlier in the
// pipeline, so the sum of weights is never zero here).
func (p Params) DecayWeightedAverage(reviews []model.Review, now time.Time) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var weightedSum, weightSum float64
	for _, r := range reviews {
		age := monthsBetween(r.CreatedAt, now)
		w := math.Exp(-age / p.DecayHalfLifeMonths)
		weightedSum += reviewAverage(r) * w
		weightSum += w
	}
	return weightedSum / weightSum
}
