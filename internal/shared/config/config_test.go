package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GALAXY_SEED", "")
	t.Setenv("REDIS_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Galaxy.Seed)
	assert.Equal(t, "galaxy:session", cfg.Galaxy.StateKey)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiration)
}

func TestLoadGalaxySeed(t *testing.T) {
	t.Setenv("GALAXY_SEED", "-42")
	t.Setenv("GALAXY_CONFIG_PATH", "configs/galaxy.toml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), cfg.Galaxy.Seed)
	assert.Equal(t, "configs/galaxy.toml", cfg.Galaxy.ConfigPath)

	t.Setenv("GALAXY_SEED", "not-a-number")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("GALAXY_SEED", "")

	cfg, err := Load()
	require.NoError(t, err)

	cfg.Auth.JWTSecret = ""
	assert.Error(t, cfg.validate())

	cfg.Auth.JWTSecret = "short"
	assert.Error(t, cfg.validate())

	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.validate())

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.BurstSize = 0
	assert.Error(t, cfg.validate())
}
