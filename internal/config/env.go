// Package config reads prng command defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment-provided defaults. Command-line flags override
// every field.
type Env struct {
	Algorithm string `env:"PRNG_ALGORITHM" envDefault:"mt19937"`
	Seed      uint32 `env:"PRNG_SEED" envDefault:"1"`
	FloatMode string `env:"PRNG_FLOAT_MODE" envDefault:"precise"`
	Count     int    `env:"PRNG_COUNT" envDefault:"10"`
	LogFormat string `env:"PRNG_LOG_FORMAT" envDefault:"console"`
	LogLevel  string `env:"PRNG_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment defaults.
func Load() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
