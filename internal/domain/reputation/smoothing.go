package reputation

import "math"

// BayesianSmooth shrinks the decay-weighted mean toward the prior using
// PriorWeight virtual reviews at PriorMean. Mentors with few reviews are
// pulled toward the prior; as n grows the output converges to weightedAvg.
func (p Params) BayesianSmooth(weightedAvg float64, n int) float64 {
	return (p.PriorMean*p.PriorWeight + weightedAvg*float64(n)) / (p.PriorWeight + float64(n))
}

// WilsonAdjusted computes the Wilson score interval lower bound over the
// normalized decayed average treated as a success rate across n trials,
// rescaled back to the 1..6 scale. The bound never exceeds the raw decayed
// mean and tightens toward it as n grows, counteracting small-sample
// overconfidence.
func (p Params) WilsonAdjusted(weightedAvg float64, n int) float64 {
	if n == 0 {
		return 0
	}
	phat := weightedAvg / scaleMax
	z := p.WilsonZ
	nf := float64(n)

	denom := 1 + z*z/nf
	center := phat + z*z/(2*nf)
	margin := z * math.Sqrt((phat*(1-phat)+z*z/(4*nf))/nf)

	return (center - margin) / denom * scaleMax
}
