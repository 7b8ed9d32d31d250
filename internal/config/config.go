package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig
}

// SimulationConfig holds Monte Carlo tuning knobs
type SimulationConfig struct {
	// Trials per estimate
	Trials int

	// MaxAttacks caps a single trial before it is discarded
	MaxAttacks int

	// Workers for the trial pool; 0 lets the engine pick GOMAXPROCS
	Workers int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			Trials:     getEnvAsIntOrDefault("SIM_TRIALS", 100000),
			MaxAttacks: getEnvAsIntOrDefault("SIM_MAX_ATTACKS", 200),
			Workers:    getEnvAsIntOrDefault("SIM_WORKERS", 0),
		},
	}

	if cfg.Simulation.Trials <= 0 {
		return nil, fmt.Errorf("SIM_TRIALS must be positive, got %d", cfg.Simulation.Trials)
	}
	if cfg.Simulation.MaxAttacks <= 0 {
		return nil, fmt.Errorf("SIM_MAX_ATTACKS must be positive, got %d", cfg.Simulation.MaxAttacks)
	}
	if cfg.Simulation.Workers < 0 {
		return nil, fmt.Errorf("SIM_WORKERS must not be negative, got %d", cfg.Simulation.Workers)
	}

	return cfg, nil
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
