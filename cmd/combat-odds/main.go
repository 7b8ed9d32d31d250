package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MeJosh/combat-odds/internal/config"
	"github.com/MeJosh/combat-odds/internal/estimator"
	"github.com/MeJosh/combat-odds/internal/services/calculator"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	damageText := flag.String("damage", "1d8+3", "damage expression, e.g. 1d8+3 or 8")
	attackBonus := flag.Int("bonus", 5, "attack bonus added to the d20 roll")
	armorClass := flag.Int("ac", 15, "target armor class")
	targetHP := flag.Int("hp", 25, "target hit points")
	crits := flag.Bool("crits", true, "natural 1 misses, natural 20 hits and doubles damage dice")
	flag.Parse()

	svc := calculator.NewService(&calculator.ServiceConfig{
		Simulation: estimator.NewMonteCarlo(&estimator.MonteCarloConfig{
			Trials:     cfg.Simulation.Trials,
			MaxAttacks: cfg.Simulation.MaxAttacks,
			Workers:    cfg.Simulation.Workers,
		}),
	})

	output, err := svc.Estimate(context.Background(), &calculator.EstimateInput{
		DamageText:   *damageText,
		AttackBonus:  *attackBonus,
		ArmorClass:   *armorClass,
		TargetHP:     *targetHP,
		CriticalHits: *crits,
	})
	if err != nil {
		log.Fatalf("Estimate failed: %v", err)
	}

	fmt.Printf("Damage %s vs AC %d (+%d to hit), %d hp, crits=%t\n",
		output.Damage, *armorClass, *attackBonus, *targetHP, *crits)
	fmt.Printf("Hit probability: %.0f%%\n\n", output.Analytic.HitProbability*100)

	printResult("Analytic (negative binomial, average damage per hit)", output.Analytic)
	printResult("Simulation (Monte Carlo)", output.Simulation)
}

func printResult(title string, result *estimator.Result) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", len(title)))

	if len(result.PMF) == 0 {
		fmt.Println("  target can never be killed with these parameters")
		fmt.Println()
		return
	}

	fmt.Printf("  expected hits needed: %.0f\n", result.HitsNeeded)
	fmt.Printf("  mean attacks:         %.2f (stddev %.2f)\n", result.Mean, result.StdDev)
	fmt.Printf("  median / mode:        %d / %d\n", result.Median, result.Mode)
	if result.Trials > 0 {
		fmt.Printf("  percentiles:          p25=%d p75=%d p90=%d p95=%d\n",
			result.P25, result.P75, result.P90, result.P95)
		fmt.Printf("  trials retained:      %d of %d\n", result.Retained, result.Trials)
	}
	fmt.Println()

	maxProb := 0.0
	for _, pt := range result.PMF {
		if pt.Probability > maxProb {
			maxProb = pt.Probability
		}
	}

	// Stop drawing once the interesting mass is shown
	cumulative := 0.0
	for _, pt := range result.PMF {
		bar := strings.Repeat("█", barLength(pt.Probability, maxProb))
		fmt.Printf("  %3d attacks %6.2f%% %s\n", pt.Attacks, pt.Probability*100, bar)
		cumulative += pt.Probability
		if cumulative >= 0.99 {
			break
		}
	}
	fmt.Println()
}

func barLength(prob, maxProb float64) int {
	if maxProb <= 0 {
		return 0
	}
	return int(math.Round(prob / maxProb * 40))
}
