// Package config resolves runtime settings for seqgarden. Values come
// from command-line flags first, then SEQGARDEN_* environment variables,
// then defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/abhisek/seqgarden/internal/progression"
)

// Environment variables read by FromEnv.
const (
	EnvLogFile = "SEQGARDEN_LOG"
	EnvTiers   = "SEQGARDEN_TIERS"
	EnvSeed    = "SEQGARDEN_SEED"
	EnvDebug   = "SEQGARDEN_DEBUG"
)

// Config holds everything needed to start a game.
type Config struct {
	// Tier preselects a tier and skips the picker. Empty shows the picker.
	Tier string

	// Seed makes problem generation reproducible when HasSeed is set.
	Seed    uint64
	HasSeed bool

	// TiersPath replaces the embedded tier table with a YAML file.
	TiersPath string

	// LogFile receives structured logs. Empty discards them; the TUI owns
	// the terminal.
	LogFile string

	// Debug lowers the log level to debug.
	Debug bool
}

// DefaultConfig returns a Config with defaults.
func DefaultConfig() Config {
	return Config{}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if p := os.Getenv(EnvLogFile); p != "" {
		cfg.LogFile = p
	}
	if p := os.Getenv(EnvTiers); p != "" {
		cfg.TiersPath = p
	}
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}
	if s := os.Getenv(EnvDebug); s != "" {
		debug, err := strconv.ParseBool(s)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}
	return cfg, nil
}

// TierTable loads the tier table named by TiersPath, or the embedded one.
func (c Config) TierTable() (*progression.TierTable, error) {
	if c.TiersPath == "" {
		return progression.DefaultTierTable(), nil
	}
	return progression.LoadTierTable(c.TiersPath)
}

// StartTier resolves Tier against table. ok is false when no tier was
// requested.
func (c Config) StartTier(table *progression.TierTable) (tier progression.Tier, ok bool, err error) {
	if c.Tier == "" {
		return "", false, nil
	}
	tier, err = table.Parse(c.Tier)
	if err != nil {
		return "", false, err
	}
	return tier, true, nil
}

// Generator returns a problem generator over table, seeded when a seed
// was configured.
func (c Config) Generator(table *progression.TierTable) *progression.Generator {
	if c.HasSeed {
		return progression.NewSeededGenerator(table, c.Seed)
	}
	return progression.NewGenerator(table, nil)
}

// Logger builds the process logger. The returned closer releases the
// log file and must be called on exit.
func (c Config) Logger() (*slog.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}
