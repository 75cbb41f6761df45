// Package config loads the start-time settings of the game.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
)

// Config is read once at start-up and fixed for the lifetime of the process.
type Config struct {
	Players                int    `env:"BLACKJACK_PLAYERS" envDefault:"4"`
	RevokeTieOnHigherScore bool   `env:"BLACKJACK_REVOKE_TIE" envDefault:"false"`
	LogLevel               string `env:"BLACKJACK_LOG_LEVEL" envDefault:"info"`
}

var levels = map[string]pterm.LogLevel{
	"trace": pterm.LogLevelTrace,
	"debug": pterm.LogLevelDebug,
	"info":  pterm.LogLevelInfo,
	"warn":  pterm.LogLevelWarn,
	"error": pterm.LogLevelError,
}

// Load reads the optional dotenv files (".env" when none is given) and then
// the environment. Variables already set in the environment win over files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot enforce through types.
func (c Config) Validate() error {
	if c.Players < 2 {
		return fmt.Errorf("BLACKJACK_PLAYERS must be at least 2, got %d", c.Players)
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the pterm log level, info when the name is unknown.
func (c Config) Level() pterm.LogLevel {
	if l, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return pterm.LogLevelInfo
}
