package auth_test

import (
	"testing"
	"time"

	auth "github.com/merastore/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("uses configured key", func(t *testing.T) {
		t.Setenv(auth.EnvSigningKey, "super-secret")
		t.Setenv(auth.EnvAppEnv, "production")

		cfg, err := auth.NewConfigFromEnv(nil)
		require.NoError(t, err)

		assert.Equal(t, "super-secret", cfg.GetSigningKey())
		assert.Equal(t, "HS256", cfg.GetSigningMethod())
		assert.Equal(t, "Bearer", cfg.GetAuthScheme())
		assert.Equal(t, int(auth.TokenTTL/time.Hour), cfg.GetTokenExpiration())
	})

	t.Run("falls back to dev key outside production", func(t *testing.T) {
		t.Setenv(auth.EnvSigningKey, "")
		t.Setenv(auth.EnvAppEnv, "development")

		cfg, err := auth.NewConfigFromEnv(nil)
		require.NoError(t, err)

		assert.Equal(t, auth.DefaultSigningKey, cfg.GetSigningKey())
	})

	t.Run("refuses missing key in production", func(t *testing.T) {
		t.Setenv(auth.EnvSigningKey, "")
		t.Setenv(auth.EnvAppEnv, "production")

		_, err := auth.NewConfigFromEnv(nil)
		assert.Error(t, err)
	})
}

func TestTokenExpirationIsSevenDays(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, auth.TokenTTL)

	cfg := auth.DefaultConfig("k")
	assert.Equal(t, 168, cfg.GetTokenExpiration())
}
