package estimator

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/MeJosh/combat-odds/internal/dice"
	"github.com/MeJosh/combat-odds/internal/entities/damage"
	"github.com/MeJosh/combat-odds/internal/errors"
	"github.com/MeJosh/combat-odds/internal/uuid"
)

const (
	// DefaultTrials is the number of simulated encounters per estimate
	DefaultTrials = 100000

	// DefaultMaxAttacks caps a single trial; trials that hit the cap
	// without a kill are discarded, not recorded as the cap value
	DefaultMaxAttacks = 200
)

// monteCarloEstimator estimates the attack-count distribution by
// simulating whole encounters, dice variance and critical damage
// included. State is local to each Estimate call; the only shared piece
// is the roller, which must be safe for concurrent use when Workers > 1.
type monteCarloEstimator struct {
	roller     dice.Roller
	trials     int
	maxAttacks int
	workers    int
	uuidGen    uuid.Generator
}

// MonteCarloConfig holds configuration for the simulation estimator
type MonteCarloConfig struct {
	Roller        dice.Roller    // Optional, defaults to the random roller
	Trials        int            // Optional, defaults to DefaultTrials
	MaxAttacks    int            // Optional, defaults to DefaultMaxAttacks
	Workers       int            // Optional, defaults to GOMAXPROCS; use 1 for a deterministic roll stream
	UUIDGenerator uuid.Generator // Optional
}

// NewMonteCarlo creates the simulation estimator
func NewMonteCarlo(cfg *MonteCarloConfig) Estimator {
	if cfg == nil {
		cfg = &MonteCarloConfig{}
	}

	e := &monteCarloEstimator{
		roller:     cfg.Roller,
		trials:     cfg.Trials,
		maxAttacks: cfg.MaxAttacks,
		workers:    cfg.Workers,
		uuidGen:    cfg.UUIDGenerator,
	}
	if e.roller == nil {
		e.roller = dice.NewRandomRoller()
	}
	if e.trials <= 0 {
		e.trials = DefaultTrials
	}
	if e.maxAttacks <= 0 {
		e.maxAttacks = DefaultMaxAttacks
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.uuidGen == nil {
		e.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return e
}

// Estimate implements Estimator
func (e *monteCarloEstimator) Estimate(ctx context.Context, input *Input) (*Result, error) {
	if input == nil {
		return nil, errors.InvalidArgument("estimation input is required")
	}
	if input.Damage == nil {
		return nil, errors.InvalidArgument("damage spec is required")
	}
	if input.TargetHP <= 0 {
		return nil, errors.InvalidArgumentf("target hit points must be positive, got %d", input.TargetHP)
	}

	counts, discarded, err := e.runTrials(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "simulation failed")
	}

	result := &Result{
		ID:             e.uuidGen.New(),
		HitProbability: HitProbability(input.AttackBonus, input.ArmorClass, input.CriticalHits),
		Trials:         e.trials,
		Retained:       e.trials - discarded,
	}

	if avg := input.Damage.Average(); avg > 0 {
		result.HitsNeeded = math.Ceil(float64(input.TargetHP) / avg)
	} else {
		result.HitsNeeded = math.Inf(1)
	}

	// Normalize over retained trials so the PMF still sums to 1 after
	// capped trials were thrown away.
	if result.Retained > 0 {
		attacks := make([]int, 0, len(counts))
		for n := range counts {
			attacks = append(attacks, n)
		}
		sort.Ints(attacks)

		result.PMF = make([]ProbabilityPoint, 0, len(attacks))
		for _, n := range attacks {
			result.PMF = append(result.PMF, ProbabilityPoint{
				Attacks:     n,
				Probability: float64(counts[n]) / float64(result.Retained),
			})
		}
	}

	summarize(result.PMF).applyTo(result)

	if result.Retained == 0 {
		// Every trial ran out of attacks: within the cap the target is
		// effectively unkillable. Mirror the analytic degenerate result.
		result.Mean = math.Inf(1)
		result.Variance = math.Inf(1)
		result.StdDev = math.Inf(1)
	}

	return result, nil
}

// runTrials fans the trial batch out over the worker pool and merges the
// per-worker attack-count histograms.
func (e *monteCarloEstimator) runTrials(ctx context.Context, input *Input) (map[int]int, int, error) {
	workerCounts := make([]map[int]int, e.workers)
	workerDiscarded := make([]int, e.workers)

	g, ctx := errgroup.WithContext(ctx)
	base := e.trials / e.workers
	extra := e.trials % e.workers
	for i := 0; i < e.workers; i++ {
		share := base
		if i < extra {
			share++
		}
		workerCounts[i] = make(map[int]int)

		counts := workerCounts[i]
		discarded := &workerDiscarded[i]
		g.Go(func() error {
			for t := 0; t < share; t++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				attacks, killed, err := e.runTrial(input)
				if err != nil {
					return err
				}
				if killed {
					counts[attacks]++
				} else {
					*discarded++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	merged := make(map[int]int)
	discarded := 0
	for i := 0; i < e.workers; i++ {
		for n, c := range workerCounts[i] {
			merged[n] += c
		}
		discarded += workerDiscarded[i]
	}
	return merged, discarded, nil
}

// runTrial simulates one encounter and reports how many attacks the kill
// took. killed is false when the trial exceeded the attack cap.
func (e *monteCarloEstimator) runTrial(input *Input) (attacks int, killed bool, err error) {
	remaining := input.TargetHP

	for attacks = 1; attacks <= e.maxAttacks; attacks++ {
		attackRoll, err := e.roller.Roll(1, 20, 0)
		if err != nil {
			return 0, false, err
		}
		natural := attackRoll.Rolls[0]

		hit := natural+input.AttackBonus >= input.ArmorClass
		crit := false
		if input.CriticalHits {
			switch natural {
			case 1:
				hit = false
			case 20:
				hit = true
				crit = true
			}
		}
		if !hit {
			continue
		}

		amount, err := e.rollDamage(input.Damage, crit)
		if err != nil {
			return 0, false, err
		}

		remaining -= amount
		if remaining <= 0 {
			return attacks, true, nil
		}
	}

	return 0, false, nil
}

// rollDamage draws one hit's damage. A critical doubles the dice rolled
// (or the flat amount); the modifier is applied once either way.
func (e *monteCarloEstimator) rollDamage(spec *damage.Spec, crit bool) (int, error) {
	if spec.IsFlat {
		if crit {
			return spec.Flat * 2, nil
		}
		return spec.Flat, nil
	}

	count := spec.DiceCount
	if crit {
		count *= 2
	}
	roll, err := e.roller.Roll(count, spec.DiceSize, spec.Bonus)
	if err != nil {
		return 0, err
	}
	if roll.Total < 0 {
		// negative modifiers cannot make a hit heal the target
		return 0, nil
	}
	return roll.Total, nil
}
