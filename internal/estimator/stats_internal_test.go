package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	pmf := []ProbabilityPoint{
		{Attacks: 1, Probability: 0.2},
		{Attacks: 2, Probability: 0.5},
		{Attacks: 3, Probability: 0.3},
	}

	stats := summarize(pmf)

	assert.InDelta(t, 2.1, stats.mean, 1e-9)
	assert.InDelta(t, 0.49, stats.variance, 1e-9)
	assert.InDelta(t, 0.7, stats.stdDev, 1e-9)
	assert.Equal(t, 2, stats.mode)
	assert.Equal(t, 2, stats.p25) // cumulative 0.2 at 1 misses the 0.25 threshold
	assert.Equal(t, 2, stats.median)
	assert.Equal(t, 3, stats.p75)
	assert.Equal(t, 3, stats.p90)
	assert.Equal(t, 3, stats.p95)
}

func TestSummarize_Empty(t *testing.T) {
	stats := summarize(nil)

	assert.Zero(t, stats.mean)
	assert.Zero(t, stats.variance)
	assert.Zero(t, stats.mode)
	// markers keep their defined fallback of 1
	assert.Equal(t, 1, stats.median)
	assert.Equal(t, 1, stats.p25)
	assert.Equal(t, 1, stats.p75)
	assert.Equal(t, 1, stats.p90)
	assert.Equal(t, 1, stats.p95)
}

func TestSummarize_ModeTieBreaksLow(t *testing.T) {
	pmf := []ProbabilityPoint{
		{Attacks: 2, Probability: 0.4},
		{Attacks: 5, Probability: 0.4},
		{Attacks: 7, Probability: 0.2},
	}

	assert.Equal(t, 2, summarize(pmf).mode)
}

func TestNegativeBinomialPMF(t *testing.T) {
	// First term is p^k, and the recurrence must reproduce the closed
	// form C(n-1, k-1) p^k (1-p)^(n-k) for small n.
	pmf := negativeBinomialPMF(4, 0.55)

	assert.Equal(t, 4, pmf[0].Attacks)
	assert.InDelta(t, math.Pow(0.55, 4), pmf[0].Probability, 1e-12)
	// P(5) = C(4,3) p^4 q
	assert.InDelta(t, 4*math.Pow(0.55, 4)*0.45, pmf[1].Probability, 1e-12)
	// P(6) = C(5,3) p^4 q^2
	assert.InDelta(t, 10*math.Pow(0.55, 4)*0.45*0.45, pmf[2].Probability, 1e-12)
}

func TestNegativeBinomialPMF_LargeHitsNeeded(t *testing.T) {
	// Binomial coefficients for k=40 exceed any integer type; the term
	// recurrence has to keep the enumerated mass complete anyway.
	pmf := negativeBinomialPMF(40, 0.55)

	mass := 0.0
	for _, pt := range pmf {
		assert.GreaterOrEqual(t, pt.Probability, 0.0)
		assert.LessOrEqual(t, pt.Probability, 1.0)
		mass += pt.Probability
	}
	assert.GreaterOrEqual(t, mass, 1-1e-6)
	assert.Less(t, len(pmf), maxTerms)
}
