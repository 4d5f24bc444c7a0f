package reputation

import (
	"math"
	"time"

	"github.com/okian/mentorank/internal/domain/model"
)

// activityIndicators is the number of binary indicators averaged by
// ActivityScore.
const activityIndicators = 3

// EngagementScore maps the session count onto [0,1] with logarithmic
// diminishing returns, saturating at EngagementSaturation sessions.
func (p Params) EngagementScore(sessionCount int) float64 {
	if sessionCount <= 0 {
		return 0
	}
	score := math.Log1p(float64(sessionCount)) / math.Log1p(p.EngagementSaturation)
	return math.Min(score, 1)
}

// ConsistencyScore measures how uniform the per-review averages are.
// Perfectly uniform reviews score 1; a population standard deviation of
// ConsistencySpread or more drives the score to 0. Decay weights are not
// applied here.
func (p Params) ConsistencyScore(reviews []model.Review) float64 {
	n := len(reviews)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += reviewAverage(r)
	}
	mean := sum / float64(n)

	var sq float64
	for _, r := range reviews {
		d := reviewAverage(r) - mean
		sq += d * d
	}
	sigma := math.Sqrt(sq / float64(n))

	return 1 - math.Min(sigma/p.ConsistencySpread, 1)
}

// ActivityScore averages three binary indicators: profile completeness, at
// least one outbound message, at least one session. The result is one of
// {0, 1/3, 2/3, 1}.
func (p Params) ActivityScore(signals model.SignalBundle) float64 {
	var hits int
	if signals.ProfileComplete {
		hits++
	}
	if signals.MessageCount > 0 {
		hits++
	}
	if signals.SessionCount > 0 {
		hits++
	}
	return float64(hits) / activityIndicators
}

// TenureScore rises linearly with account age, reaching 1 at
// TenureFullMonths. Every mentor gets at least TenureFloor, even on day one.
func (p Params) TenureScore(createdAt, now time.Time) float64 {
	months := monthsBetween(createdAt, now)
	base := math.Min(months/p.TenureFullMonths, 1)
	return math.Max(base, p.TenureFloor)
}
