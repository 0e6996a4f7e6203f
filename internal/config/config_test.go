package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/seqgarden/internal/progression"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvTiers, "")
	t.Setenv(EnvSeed, "")
	t.Setenv(EnvDebug, "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFromEnv_ReadsVariables(t *testing.T) {
	t.Setenv(EnvLogFile, "/tmp/garden.log")
	t.Setenv(EnvTiers, "/tmp/tiers.yaml")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvDebug, "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/garden.log", cfg.LogFile)
	assert.Equal(t, "/tmp/tiers.yaml", cfg.TiersPath)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Debug)
}

func TestFromEnv_BadValues(t *testing.T) {
	t.Setenv(EnvSeed, "forty-two")
	_, err := FromEnv()
	assert.ErrorContains(t, err, EnvSeed)

	t.Setenv(EnvSeed, "")
	t.Setenv(EnvDebug, "sometimes")
	_, err = FromEnv()
	assert.ErrorContains(t, err, EnvDebug)
}

func TestStartTier(t *testing.T) {
	table := progression.DefaultTierTable()

	_, ok, err := Config{}.StartTier(table)
	require.NoError(t, err)
	assert.False(t, ok)

	tier, ok, err := Config{Tier: "Advanced"}.StartTier(table)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, progression.TierAdvanced, tier)

	_, _, err = Config{Tier: "expert"}.StartTier(table)
	assert.ErrorIs(t, err, progression.ErrUnknownTier)
}

func TestTierTable_FromFile(t *testing.T) {
	cfg := Config{TiersPath: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := cfg.TierTable()
	assert.Error(t, err)

	table, err := Config{}.TierTable()
	require.NoError(t, err)
	assert.Same(t, progression.DefaultTierTable(), table)
}

func TestGenerator_SeedIsReproducible(t *testing.T) {
	table := progression.DefaultTierTable()
	cfg := Config{Seed: 99, HasSeed: true}

	a, err := cfg.Generator(table).Generate(progression.TierAdvanced)
	require.NoError(t, err)
	b, err := cfg.Generator(table).Generate(progression.TierAdvanced)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLogger(t *testing.T) {
	logger, closer, err := Config{}.Logger()
	require.NoError(t, err)
	logger.Info("dropped")
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "garden.log")
	logger, closer, err = Config{LogFile: path, Debug: true}.Logger()
	require.NoError(t, err)
	logger.Debug("hello", "tier", "beginner")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "tier=beginner")
}
