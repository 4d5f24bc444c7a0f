// Package reputation computes a mentor's derived trust state from peer
// reviews and behavioral signals.
//
// The pipeline is deterministic and stateless: given the same review
// snapshot, signal bundle and evaluation instant it always produces the
// same rating, level and badge set. All tunable constants live in Params
// so the weighting scheme can change without touching the pipeline shape.
package reputation

import "fmt"

// Default parameter values on the 1..6 review scale.
const (
	defaultDecayHalfLifeMonths  = 6.0
	defaultPriorMean            = 5.5
	defaultPriorWeight          = 3.0
	defaultWilsonZ              = 1.96
	defaultEngagementSaturation = 50.0
	defaultConsistencySpread    = 2.0
	defaultTenureFullMonths     = 24.0
	defaultTenureFloor          = 0.1
)

// Reference composite weights. Several weight vectors existed historically;
// this is the tunable reference, not a law of nature.
const (
	defaultWeightWilson      = 0.45
	defaultWeightBayesian    = 0.35
	defaultWeightEngagement  = 0.10
	defaultWeightConsistency = 0.05
	defaultWeightActivity    = 0.05
	defaultWeightTenure      = 0.01
)

// Weights is the composite blend vector. The wilson and bayesian terms are
// already on the 1..6 scale; the four auxiliary scores are [0,1]-normalized
// and rescaled before blending.
type Weights struct {
	Wilson      float64 `koanf:"wilson"`
	Bayesian    float64 `koanf:"bayesian"`
	Engagement  float64 `koanf:"engagement"`
	Consistency float64 `koanf:"consistency"`
	Activity    float64 `koanf:"activity"`
	Tenure      float64 `koanf:"tenure"`
}

// Params bundles every tunable constant of the scoring pipeline.
type Params struct {
	// DecayHalfLifeMonths controls the exponential down-weighting of old
	// reviews: weight = exp(-ageMonths / DecayHalfLifeMonths).
	DecayHalfLifeMonths float64 `koanf:"decay_half_life_months"`

	// PriorMean and PriorWeight define the Bayesian shrinkage prior:
	// PriorWeight virtual reviews at PriorMean.
	PriorMean   float64 `koanf:"prior_mean"`
	PriorWeight float64 `koanf:"prior_weight"`

	// WilsonZ is the z-score for the Wilson lower confidence bound.
	WilsonZ float64 `koanf:"wilson_z"`

	// EngagementSaturation is the session count at which the logarithmic
	// engagement score reaches 1.
	EngagementSaturation float64 `koanf:"engagement_saturation"`

	// ConsistencySpread is the standard deviation at which the consistency
	// score bottoms out at 0.
	ConsistencySpread float64 `koanf:"consistency_spread"`

	// TenureFullMonths is the account age at which tenure reaches 1;
	// TenureFloor is the minimum tenure score granted on day one.
	TenureFullMonths float64 `koanf:"tenure_full_months"`
	TenureFloor      float64 `koanf:"tenure_floor"`

	// Weights is the composite blend vector.
	Weights Weights `koanf:"weights"`
}

// DefaultParams returns the reference parameter set.
func DefaultParams() Params {
	return Params{
		DecayHalfLifeMonths:  defaultDecayHalfLifeMonths,
		PriorMean:            defaultPriorMean,
		PriorWeight:          defaultPriorWeight,
		WilsonZ:              defaultWilsonZ,
		EngagementSaturation: defaultEngagementSaturation,
		ConsistencySpread:    defaultConsistencySpread,
		TenureFullMonths:     defaultTenureFullMonths,
		TenureFloor:          defaultTenureFloor,
		Weights: Weights{
			Wilson:      defaultWeightWilson,
			Bayesian:    defaultWeightBayesian,
			Engagement:  defaultWeightEngagement,
			Consistency: defaultWeightConsistency,
			Activity:    defaultWeightActivity,
			Tenure:      defaultWeightTenure,
		},
	}
}

// Validate rejects parameter sets that would break the pipeline.
func (p Params) Validate() error {
	switch {
	case p.DecayHalfLifeMonths <= 0:
		return fmt.Errorf("%w: decay_half_life_months must be positive", ErrInvalidParams)
	case p.PriorWeight < 0:
		return fmt.Errorf("%w: prior_weight must not be negative", ErrInvalidParams)
	case p.WilsonZ <= 0:
		return fmt.Errorf("%w: wilson_z must be positive", ErrInvalidParams)
	case p.EngagementSaturation <= 0:
		return fmt.Errorf("%w: engagement_saturation must be positive", ErrInvalidParams)
	case p.ConsistencySpread <= 0:
		return fmt.Errorf("%w: consistency_spread must be positive", ErrInvalidParams)
	case p.TenureFullMonths <= 0:
		return fmt.Errorf("%w: tenure_full_months must be positive", ErrInvalidParams)
	case p.TenureFloor < 0 || p.TenureFloor > 1:
		return fmt.Errorf("%w: tenure_floor must be within [0,1]", ErrInvalidParams)
	}
	for _, w := range []float64{
		p.Weights.Wilson, p.Weights.Bayesian, p.Weights.Engagement,
		p.Weights.Consistency, p.Weights.Activity, p.Weights.Tenure,
	} {
		if w < 0 {
			return fmt.Errorf("%w: composite weights must not be negative", ErrInvalidParams)
		}
	}
	return nil
}
