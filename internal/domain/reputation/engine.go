package reputation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/okian/mentorank/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithParams replaces the default parameter set.
func WithParams(p Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// Input bundles everything one scoring run reads: the mentor's full review
// snapshot in chronological order (oldest first), the auxiliary signals,
// the profile attributes and the evaluation instant.
type Input struct {
	Reviews []model.Review
	Signals model.SignalBundle
	Profile model.ProfileSnapshot
	Now     time.Time
}

// Components exposes the intermediate sub-scores of one run. The wilson and
// bayesian terms are on the 1..6 scale; the four auxiliary scores are
// [0,1]-normalized.
type Components struct {
	WeightedAvg    float64 `json:"weighted_avg"`
	Bayesian       float64 `json:"bayesian"`
	WilsonAdjusted float64 `json:"wilson_adjusted"`
	Engagement     float64 `json:"engagement"`
	Consistency    float64 `json:"consistency"`
	Activity       float64 `json:"activity"`
	Tenure         float64 `json:"tenure"`
}

// Result is the derived state of one scoring run.
type Result struct {
	Rating       float64
	TotalReviews int
	Level        int
	LevelTitle   string
	Badges       []model.Badge
	Components   Components
}

// HasBadge reports whether the result's badge set contains b.
func (r Result) HasBadge(b model.Badge) bool {
	for _, have := range r.Badges {
		if have == b {
			return true
		}
	}
	return false
}

// Engine runs the scoring pipeline. It holds no state across invocations;
// each call is idempotent given identical inputs.
type Engine struct {
	params Params
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		params: DefaultParams(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Params returns the parameter set the engine runs with.
func (e *Engine) Params() Params {
	return e.params
}

// Score computes the full derived state for one mentor. Inputs are assumed
// pre-validated by the submission workflow; sub-scores outside the 1..6
// range fail fast rather than corrupting the aggregate.
func (e *Engine) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	for _, r := range in.Reviews {
		if err := validateReview(r); err != nil {
			return Result{}, err
		}
	}

	n := len(in.Reviews)
	if n == 0 {
		// Defined zero-state: no reviews means no rating, level 1, no
		// badges. Short-circuits before any averaging can divide by zero.
		return Result{
			Rating:       0,
			TotalReviews: 0,
			Level:        LevelNew,
			LevelTitle:   newMentorTitle,
			Badges:       []model.Badge{},
		}, nil
	}

	p := e.params
	c := Components{
		WeightedAvg: p.DecayWeightedAverage(in.Reviews, in.Now),
		Engagement:  p.EngagementScore(in.Signals.SessionCount),
		Consistency: p.ConsistencyScore(in.Reviews),
		Activity:    p.ActivityScore(in.Signals),
		Tenure:      p.TenureScore(in.Profile.CreatedAt, in.Now),
	}
	c.Bayesian = p.BayesianSmooth(c.WeightedAvg, n)
	c.WilsonAdjusted = p.WilsonAdjusted(c.WeightedAvg, n)

	rating := p.Composite(c)
	level, title := ClassifyLevel(rating, n)

	return Result{
		Rating:       rating,
		TotalReviews: n,
		Level:        level,
		LevelTitle:   title,
		Badges:       AssignBadges(rating, n, level, in.Reviews, in.Profile),
		Components:   c,
	}, nil
}

// Composite blends the sub-scores into the final rating, rounded to two
// decimal places. The auxiliary scores are rescaled to the 1..6 scale so
// all six terms share units.
func (p Params) Composite(c Components) float64 {
	rating := p.Weights.Wilson*c.WilsonAdjusted +
		p.Weights.Bayesian*c.Bayesian +
		p.Weights.Engagement*c.Engagement*scaleMax +
		p.Weights.Consistency*c.Consistency*scaleMax +
		p.Weights.Activity*c.Activity*scaleMax +
		p.Weights.Tenure*c.Tenure*scaleMax
	return math.Round(rating*100) / 100
}

// validateReview fails fast on sub-scores outside the closed 1..6 range.
func validateReview(r model.Review) error {
	for _, s := range []int{r.Friendliness, r.Knowledge, r.Communication} {
		if s < minSubScore || s > maxSubScore {
			return fmt.Errorf("%w: review %s has sub-score %d", ErrScoreOutOfRange, r.ReviewID, s)
		}
	}
	return nil
}
