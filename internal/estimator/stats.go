package estimator

import "math"

// pmfStats is the summary a completed PMF reduces to. Pure aggregation:
// no randomness, no I/O, nothing beyond the points handed in.
type pmfStats struct {
	mean     float64
	variance float64
	stdDev   float64
	median   int
	mode     int
	p25      int
	p75      int
	p90      int
	p95      int
}

// summarize computes moments, mode, median and percentile markers from a
// PMF sorted by ascending attack count. Percentile markers default to 1
// when their threshold is never reached; mode ties resolve to the
// smallest attack count.
func summarize(pmf []ProbabilityPoint) pmfStats {
	stats := pmfStats{median: 1, p25: 1, p75: 1, p90: 1, p95: 1}
	if len(pmf) == 0 {
		return stats
	}

	var mean, meanSq float64
	for _, pt := range pmf {
		n := float64(pt.Attacks)
		mean += n * pt.Probability
		meanSq += n * n * pt.Probability
	}
	stats.mean = mean
	stats.variance = meanSq - mean*mean
	if stats.variance < 0 {
		// floating error on near-degenerate distributions
		stats.variance = 0
	}
	stats.stdDev = math.Sqrt(stats.variance)

	bestProb := 0.0
	for _, pt := range pmf {
		if pt.Probability > bestProb {
			bestProb = pt.Probability
			stats.mode = pt.Attacks
		}
	}

	var cumulative float64
	var found25, found50, found75, found90, found95 bool
	for _, pt := range pmf {
		cumulative += pt.Probability
		if !found25 && cumulative >= 0.25 {
			stats.p25 = pt.Attacks
			found25 = true
		}
		if !found50 && cumulative >= 0.5 {
			stats.median = pt.Attacks
			found50 = true
		}
		if !found75 && cumulative >= 0.75 {
			stats.p75 = pt.Attacks
			found75 = true
		}
		if !found90 && cumulative >= 0.90 {
			stats.p90 = pt.Attacks
			found90 = true
		}
		if !found95 && cumulative >= 0.95 {
			stats.p95 = pt.Attacks
			found95 = true
		}
	}

	return stats
}

// applyTo copies the summary onto a result
func (s pmfStats) applyTo(result *Result) {
	result.Mean = s.mean
	result.Variance = s.variance
	result.StdDev = s.stdDev
	result.Median = s.median
	result.Mode = s.mode
	result.P25 = s.p25
	result.P75 = s.p75
	result.P90 = s.p90
	result.P95 = s.p95
}
