package calculator

//go:generate mockgen -destination=mock/mock_service.go -package=mockcalculator -source=service.go

import (
	"context"

	"github.com/MeJosh/combat-odds/internal/entities/damage"
	"github.com/MeJosh/combat-odds/internal/errors"
	"github.com/MeJosh/combat-odds/internal/estimator"
	"github.com/MeJosh/combat-odds/internal/uuid"
)

// Service is the calculator facade the presentation layer calls: raw
// damage text plus combat numbers in, both engines' results out. It owns
// no state between calls; callers re-invoke it whenever inputs change.
type Service interface {
	// Estimate parses the damage expression and runs the analytic and
	// simulation estimators on the same parameters
	Estimate(ctx context.Context, input *EstimateInput) (*EstimateOutput, error)
}

// EstimateInput carries one set of raw calculator inputs
type EstimateInput struct {
	// DamageText is the raw damage expression, e.g. "1d8+3" or "8"
	DamageText string

	AttackBonus  int
	ArmorClass   int
	TargetHP     int
	CriticalHits bool
}

// EstimateOutput pairs the two engines' results for one input set
type EstimateOutput struct {
	ID string

	// Damage is the parsed spec both engines consumed
	Damage *damage.Spec

	// Analytic is the closed-form negative-binomial result. Its damage
	// model is the spec's average per hit; see the estimator package.
	Analytic *estimator.Result

	// Simulation is the Monte Carlo result with full dice variance
	Simulation *estimator.Result
}

type service struct {
	analytic   estimator.Estimator
	simulation estimator.Estimator
	uuidGen    uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Analytic      estimator.Estimator // Optional, defaults to the negative-binomial engine
	Simulation    estimator.Estimator // Optional, defaults to the Monte Carlo engine
	UUIDGenerator uuid.Generator      // Optional
}

// NewService creates a new calculator service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	svc := &service{
		analytic:   cfg.Analytic,
		simulation: cfg.Simulation,
		uuidGen:    cfg.UUIDGenerator,
	}
	if svc.analytic == nil {
		svc.analytic = estimator.NewAnalytic(nil)
	}
	if svc.simulation == nil {
		svc.simulation = estimator.NewMonteCarlo(nil)
	}
	if svc.uuidGen == nil {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return svc
}

// Estimate implements Service.Estimate
func (s *service) Estimate(ctx context.Context, input *EstimateInput) (*EstimateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("estimate input is required")
	}
	if input.AttackBonus < 0 {
		return nil, errors.InvalidArgumentf("attack bonus must not be negative, got %d", input.AttackBonus)
	}
	if input.TargetHP <= 0 {
		return nil, errors.InvalidArgumentf("target hit points must be positive, got %d", input.TargetHP)
	}

	spec, err := damage.Parse(input.DamageText)
	if err != nil {
		// No silent fallback here: whether to reuse a last-known-good
		// expression is the caller's policy, not ours.
		return nil, errors.Wrapf(err, "cannot parse damage expression %q", input.DamageText)
	}

	estInput := &estimator.Input{
		Damage:       spec,
		AttackBonus:  input.AttackBonus,
		ArmorClass:   input.ArmorClass,
		TargetHP:     input.TargetHP,
		CriticalHits: input.CriticalHits,
	}

	analytic, err := s.analytic.Estimate(ctx, estInput)
	if err != nil {
		return nil, errors.Wrap(err, "analytic estimate failed")
	}

	simulation, err := s.simulation.Estimate(ctx, estInput)
	if err != nil {
		return nil, errors.Wrap(err, "simulation estimate failed")
	}

	return &EstimateOutput{
		ID:         s.uuidGen.New(),
		Damage:     spec,
		Analytic:   analytic,
		Simulation: simulation,
	}, nil
}
