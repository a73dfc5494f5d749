// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for cmd/web.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	BaseURL        string        `env:"BASE_URL"`
	MaxPlayers     int           `env:"MAX_PLAYERS" envDefault:"6"`
	RollTimeout    time.Duration `env:"ROLL_TIMEOUT" envDefault:"20s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is empty")
	}
	if c.MaxPlayers < 1 {
		return fmt.Errorf("MAX_PLAYERS must be at least 1, got %d", c.MaxPlayers)
	}
	if c.RollTimeout <= 0 {
		return fmt.Errorf("ROLL_TIMEOUT must be positive, got %s", c.RollTimeout)
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
