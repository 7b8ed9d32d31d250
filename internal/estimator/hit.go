package estimator

// HitProbability computes the chance a single attack roll (d20 + bonus)
// meets or exceeds the target's armor class. With critical rules a
// natural 1 always misses and a natural 20 always hits, so the result
// is clamped into [1/20, 19/20]. Pure function; both engines use it.
func HitProbability(attackBonus, armorClass int, criticalHits bool) float64 {
	p := float64(21+attackBonus-armorClass) / 20
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	if criticalHits {
		if p < 0.05 {
			p = 0.05
		}
		if p > 0.95 {
			p = 0.95
		}
	}

	return p
}
