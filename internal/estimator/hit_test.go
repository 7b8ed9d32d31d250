package estimator_test

import (
	"testing"

	"github.com/MeJosh/combat-odds/internal/estimator"
	"github.com/stretchr/testify/assert"
)

func TestHitProbability(t *testing.T) {
	tests := []struct {
		name        string
		attackBonus int
		armorClass  int
		crits       bool
		want        float64
	}{
		{name: "baseline +5 vs AC 15", attackBonus: 5, armorClass: 15, crits: true, want: 0.55},
		{name: "same without crits", attackBonus: 5, armorClass: 15, crits: false, want: 0.55},
		{name: "unhittable without crits", attackBonus: 0, armorClass: 40, crits: false, want: 0},
		{name: "natural 20 floor with crits", attackBonus: 0, armorClass: 40, crits: true, want: 0.05},
		{name: "guaranteed without crits", attackBonus: 10, armorClass: 1, crits: false, want: 1},
		{name: "natural 1 ceiling with crits", attackBonus: 10, armorClass: 1, crits: true, want: 0.95},
		{name: "exact boundary needs a 20", attackBonus: 0, armorClass: 20, crits: false, want: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimator.HitProbability(tt.attackBonus, tt.armorClass, tt.crits)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHitProbability_Ranges(t *testing.T) {
	for bonus := 0; bonus <= 15; bonus++ {
		for ac := 1; ac <= 40; ac++ {
			withCrits := estimator.HitProbability(bonus, ac, true)
			assert.GreaterOrEqual(t, withCrits, 0.05)
			assert.LessOrEqual(t, withCrits, 0.95)

			raw := float64(21+bonus-ac) / 20
			if raw < 0 {
				raw = 0
			}
			if raw > 1 {
				raw = 1
			}
			assert.InDelta(t, raw, estimator.HitProbability(bonus, ac, false), 1e-9)
		}
	}
}
