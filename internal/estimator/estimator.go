package estimator

//go:generate mockgen -destination=mock/mock_estimator.go -package=mockestimator -source=estimator.go

import (
	"context"

	"github.com/MeJosh/combat-odds/internal/entities/damage"
)

// Input holds the combat parameters for a single estimation. It is
// supplied per call and never retained by an estimator.
type Input struct {
	// Damage dealt by each hit
	Damage *damage.Spec

	// AttackBonus is added to the d20 attack roll
	AttackBonus int

	// ArmorClass the attack total must meet or exceed
	ArmorClass int

	// TargetHP is the health to burn through; must be positive
	TargetHP int

	// CriticalHits enables natural-1 auto-miss and natural-20 auto-hit
	// with doubled damage dice
	CriticalHits bool
}

// ProbabilityPoint maps an attack count to its probability
type ProbabilityPoint struct {
	Attacks     int
	Probability float64
}

// Result is the outcome of one estimation. Everything in it derives from
// the PMF and the input parameters; there is no hidden state.
type Result struct {
	ID string

	// HitProbability of a single attack landing
	HitProbability float64

	// HitsNeeded to kill the target; +Inf when a kill is impossible
	HitsNeeded float64

	// PMF over "attacks until the target dies", ascending attack count
	PMF []ProbabilityPoint

	// NormalApprox is the normal-approximation curve over the PMF window.
	// Only the analytic estimator fills it in.
	NormalApprox []ProbabilityPoint

	Mean     float64
	Variance float64
	StdDev   float64

	Median int
	Mode   int
	P25    int
	P75    int
	P90    int
	P95    int

	// Trials run and Retained after discarding capped trials. Only the
	// simulation estimator fills these in.
	Trials   int
	Retained int
}

// Estimator estimates the distribution of attacks needed to defeat a
// target. The analytic and simulation engines both implement it so
// callers can compare the two on the same parameters.
type Estimator interface {
	Estimate(ctx context.Context, input *Input) (*Result, error)
}
