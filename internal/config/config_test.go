package config_test

import (
	"testing"

	"github.com/MeJosh/combat-odds/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SIM_TRIALS", "")
	t.Setenv("SIM_MAX_ATTACKS", "")
	t.Setenv("SIM_WORKERS", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 100000, cfg.Simulation.Trials)
	assert.Equal(t, 200, cfg.Simulation.MaxAttacks)
	assert.Equal(t, 0, cfg.Simulation.Workers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SIM_TRIALS", "5000")
	t.Setenv("SIM_MAX_ATTACKS", "50")
	t.Setenv("SIM_WORKERS", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Simulation.Trials)
	assert.Equal(t, 50, cfg.Simulation.MaxAttacks)
	assert.Equal(t, 2, cfg.Simulation.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SIM_TRIALS", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_NonNumericFallsBack(t *testing.T) {
	t.Setenv("SIM_TRIALS", "lots")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 100000, cfg.Simulation.Trials)
}
