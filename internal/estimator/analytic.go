package estimator

import (
	"context"
	"math"

	"github.com/MeJosh/combat-odds/internal/errors"
	"github.com/MeJosh/combat-odds/internal/uuid"
)

const (
	// tailCutoff stops PMF enumeration once this little mass remains
	tailCutoff = 1e-6

	// maxTerms bounds PMF enumeration regardless of remaining mass
	maxTerms = 1000

	// normalWindowSigmas is the half-width of the approximation curve
	normalWindowSigmas = 4.0
)

// analyticEstimator computes the exact negative-binomial distribution of
// "attacks until kill", treating every hit as dealing the damage spec's
// average. Criticals only affect the hit probability here; the damage
// variance of dice and doubled crit dice is the simulation engine's
// territory.
type analyticEstimator struct {
	uuidGen uuid.Generator
}

// AnalyticConfig holds configuration for the analytic estimator
type AnalyticConfig struct {
	UUIDGenerator uuid.Generator // Optional
}

// NewAnalytic creates the closed-form estimator
func NewAnalytic(cfg *AnalyticConfig) Estimator {
	if cfg == nil {
		cfg = &AnalyticConfig{}
	}
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return &analyticEstimator{uuidGen: gen}
}

// Estimate implements Estimator
func (e *analyticEstimator) Estimate(_ context.Context, input *Input) (*Result, error) {
	if input == nil {
		return nil, errors.InvalidArgument("estimation input is required")
	}
	if input.Damage == nil {
		return nil, errors.InvalidArgument("damage spec is required")
	}
	if input.TargetHP <= 0 {
		return nil, errors.InvalidArgumentf("target hit points must be positive, got %d", input.TargetHP)
	}

	damagePerHit := input.Damage.Average()
	if damagePerHit <= 0 {
		return nil, errors.InvalidArgumentf("damage per hit must be positive, got %v", damagePerHit)
	}

	p := HitProbability(input.AttackBonus, input.ArmorClass, input.CriticalHits)
	result := &Result{
		ID:             e.uuidGen.New(),
		HitProbability: p,
	}

	if p == 0 {
		// The target can never be hit. Not an error: the caller gets an
		// explicit "never succeeds" result with an empty PMF.
		result.HitsNeeded = math.Inf(1)
		summarize(nil).applyTo(result)
		result.Mean = math.Inf(1)
		result.Variance = math.Inf(1)
		result.StdDev = math.Inf(1)
		return result, nil
	}

	hitsNeeded := int(math.Ceil(float64(input.TargetHP) / damagePerHit))
	result.HitsNeeded = float64(hitsNeeded)

	result.PMF = negativeBinomialPMF(hitsNeeded, p)
	summarize(result.PMF).applyTo(result)

	// Closed-form moments are exact; the PMF ones are truncated at the
	// tail cutoff, so prefer the closed forms.
	result.Mean = float64(hitsNeeded) / p
	result.Variance = float64(hitsNeeded) * (1 - p) / (p * p)
	result.StdDev = math.Sqrt(result.Variance)

	result.NormalApprox = normalApproximation(result.PMF, result.Mean, result.StdDev)

	return result, nil
}

// negativeBinomialPMF enumerates P(N=n) = C(n-1, k-1) p^k (1-p)^(n-k)
// upward from n = k, stopping once the unemitted tail mass drops below
// tailCutoff or maxTerms points have been emitted. Each term is derived
// from the previous one via P(n+1) = P(n) * (1-p) * n / (n-k+1), so no
// binomial coefficient is ever materialized; the coefficients overflow
// integer arithmetic from k around 35 onward.
func negativeBinomialPMF(hitsNeeded int, p float64) []ProbabilityPoint {
	q := 1 - p
	prob := math.Pow(p, float64(hitsNeeded))

	pmf := make([]ProbabilityPoint, 0, 64)
	cumulative := 0.0
	for n := hitsNeeded; len(pmf) < maxTerms; n++ {
		pmf = append(pmf, ProbabilityPoint{Attacks: n, Probability: prob})
		cumulative += prob
		if 1-cumulative < tailCutoff {
			break
		}
		prob *= q * float64(n) / float64(n-hitsNeeded+1)
	}
	return pmf
}

// normalApproximation samples the scaled normal density at integer attack
// counts within mean ± 4σ and rescales it to carry the same mass the
// exact PMF has in that window. Exists so the presentation layer can
// overlay discrete and continuous views of the same distribution.
func normalApproximation(pmf []ProbabilityPoint, mean, stdDev float64) []ProbabilityPoint {
	if !(stdDev > 0) || math.IsInf(mean, 0) {
		return nil
	}

	lo := int(math.Floor(mean - normalWindowSigmas*stdDev))
	if lo < 1 {
		lo = 1
	}
	hi := int(math.Ceil(mean + normalWindowSigmas*stdDev))
	if hi < lo {
		return nil
	}

	curve := make([]ProbabilityPoint, 0, hi-lo+1)
	curveMass := 0.0
	for n := lo; n <= hi; n++ {
		z := (float64(n) - mean) / stdDev
		density := math.Exp(-z*z/2) / (math.Sqrt(2*math.Pi) * stdDev)
		curve = append(curve, ProbabilityPoint{Attacks: n, Probability: density})
		curveMass += density
	}
	if curveMass == 0 {
		return curve
	}

	exactMass := 0.0
	for _, pt := range pmf {
		if pt.Attacks >= lo && pt.Attacks <= hi {
			exactMass += pt.Probability
		}
	}

	scale := 1 / curveMass
	if exactMass > 0 {
		scale = exactMass / curveMass
	}
	for i := range curve {
		curve[i].Probability *= scale
	}
	return curve
}
