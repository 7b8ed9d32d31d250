package estimator_test

import (
	"context"
	"testing"

	"github.com/MeJosh/combat-odds/internal/estimator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both engines model the same thing when damage is flat and crit rules
// are off (no damage doubling to diverge on), so their results should
// converge at the default trial count.
func TestEstimatorParity_FixedDamage(t *testing.T) {
	input := &estimator.Input{
		Damage:       mustParse(t, "8"),
		AttackBonus:  5,
		ArmorClass:   15,
		TargetHP:     25,
		CriticalHits: false,
	}

	analytic, err := estimator.NewAnalytic(nil).Estimate(context.Background(), input)
	require.NoError(t, err)

	simulation, err := estimator.NewMonteCarlo(nil).Estimate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, analytic.HitProbability, simulation.HitProbability)
	assert.Equal(t, analytic.HitsNeeded, simulation.HitsNeeded)

	// at 100k trials the empirical mean sits well within 2% of exact
	assert.InDelta(t, analytic.Mean, simulation.Mean, analytic.Mean*0.02)
	assert.InDelta(t, analytic.StdDev, simulation.StdDev, analytic.StdDev*0.05)

	// distribution shape: medians and modes land within a step
	assert.InDelta(t, float64(analytic.Median), float64(simulation.Median), 1)
	assert.InDelta(t, float64(analytic.Mode), float64(simulation.Mode), 1)

	// neither support reaches below the minimum hit count
	require.NotEmpty(t, simulation.PMF)
	assert.GreaterOrEqual(t, simulation.PMF[0].Attacks, 4)
}
