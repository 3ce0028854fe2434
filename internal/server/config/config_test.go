package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":3000", cfg.EndpointAddr)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "covers", cfg.S3Bucket)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/books")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "5")
	t.Setenv("S3_BUCKET", "cover-images")
	t.Setenv("GIN_MODE", "debug")

	cfg := LoadConfig()

	require.Equal(t, ":8081", cfg.EndpointAddr)
	require.Equal(t, "debug", cfg.GinMode)
	require.Equal(t, "postgres://u:p@db:5432/books", cfg.DatabaseDSN)
	require.Equal(t, "env-secret", cfg.SecretKey)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, "cover-images", cfg.S3Bucket)
}

func TestParseEnv_PortWithColon(t *testing.T) {
	t.Setenv("PORT", ":9191")

	cfg := LoadConfig()
	require.Equal(t, ":9191", cfg.EndpointAddr)
}

func TestParseEnv_IgnoresUnparsableDurations(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "soon")

	cfg := LoadConfig()
	require.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
}
