// Package config loads codebreak settings from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds CLI configuration. Flags override environment values.
type Config struct {
	LogLevel   string        `env:"CODEBREAK_LOG_LEVEL" envDefault:"warn"`
	LogFile    string        `env:"CODEBREAK_LOG_FILE"`
	TurnDelay  time.Duration `env:"CODEBREAK_TURN_DELAY" envDefault:"5s"`
	Seed       int64         `env:"CODEBREAK_SEED"`
	SeedPhrase string        `env:"CODEBREAK_SEED_PHRASE"`
	MaxPlayers int           `env:"CODEBREAK_MAX_PLAYERS" envDefault:"10"`
	NoClear    bool          `env:"CODEBREAK_NO_CLEAR"`
}

// Parse loads defaults from the environment, then parses flags.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error); debug and below log secret codes")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr")
	fs.DurationVar(&cfg.TurnDelay, "delay", cfg.TurnDelay, "Pause between turns")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	fs.StringVar(&cfg.SeedPhrase, "seed-phrase", cfg.SeedPhrase, "Derive the random seed from a phrase")
	fs.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "Largest number of players accepted at setup")
	fs.BoolVar(&cfg.NoClear, "no-clear", cfg.NoClear, "Never clear the screen between turns")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SecretsOnTerminal reports whether debug logs, which include every
// player's secret code, would be written to stderr next to the game.
func (c Config) SecretsOnTerminal() bool {
	if c.LogFile != "" {
		return false
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	return err == nil && lvl <= zerolog.DebugLevel
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxPlayers < 2 {
		return fmt.Errorf("max players must be at least 2, got %d", c.MaxPlayers)
	}
	if c.TurnDelay < 0 {
		return fmt.Errorf("turn delay must not be negative, got %s", c.TurnDelay)
	}
	return nil
}
