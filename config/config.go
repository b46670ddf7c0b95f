// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for one titanhunt process. Command-line flags
// override these after loading.
type Config struct {
	LogLevel    string  `env:"TITANHUNT_LOG_LEVEL"    envDefault:"warn"`
	HexSize     float64 `env:"TITANHUNT_HEX_SIZE"     envDefault:"2"`
	VerifyPaths bool    `env:"TITANHUNT_VERIFY_PATHS" envDefault:"false"`
	MapWidth    int     `env:"TITANHUNT_MAP_WIDTH"    envDefault:"12"`
	MapHeight   int     `env:"TITANHUNT_MAP_HEIGHT"   envDefault:"10"`
	// Seed selects procedural terrain for the default skirmish; 0 keeps
	// the map flat.
	Seed int64 `env:"TITANHUNT_SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and checks the values.
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

// Validate rejects values no game can use.
func (c Config) Validate() error {
	if c.HexSize <= 0 {
		return fmt.Errorf("TITANHUNT_HEX_SIZE must be positive, got %g", c.HexSize)
	}
	if c.MapWidth < 1 || c.MapHeight < 1 {
		return fmt.Errorf("map size must be at least 1x1, got %dx%d", c.MapWidth, c.MapHeight)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level. Names are case-insensitive.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("TITANHUNT_LOG_LEVEL: %w", err)
	}
	return level, nil
}
