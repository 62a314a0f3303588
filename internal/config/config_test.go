package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_EXPIRATION", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost:8080", cfg.ServerAddr)
		assert.Equal(t, 25, cfg.MaxDBConnections)
		assert.False(t, cfg.Debug)
		assert.Equal(t, int64(3600000), cfg.JWT.ExpirationMillis)
		assert.Equal(t, time.Hour, cfg.JWT.Lifetime())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "file:campus.db")
		t.Setenv("SERVER_ADDR", "0.0.0.0:9090")
		t.Setenv("MAX_DB_CONNECTIONS", "5")
		t.Setenv("DEBUG", "true")
		t.Setenv("JWT_EXPIRATION", "60000")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "file:campus.db", cfg.DatabaseURL)
		assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddr)
		assert.Equal(t, 5, cfg.MaxDBConnections)
		assert.True(t, cfg.Debug)
		assert.Equal(t, time.Minute, cfg.JWT.Lifetime())
	})

	t.Run("non-positive expiration fails", func(t *testing.T) {
		t.Setenv("JWT_EXPIRATION", "-1")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestJWTConfig_SigningKey(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		raw := []byte("0123456789abcdef0123456789abcdef")
		cfg := JWTConfig{Secret: base64.StdEncoding.EncodeToString(raw)}

		key, err := cfg.SigningKey()
		require.NoError(t, err)
		assert.Equal(t, raw, key)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := JWTConfig{}.SigningKey()
		assert.Error(t, err)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := JWTConfig{Secret: "%%%not-base64%%%"}.SigningKey()
		assert.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		cfg := JWTConfig{Secret: base64.StdEncoding.EncodeToString([]byte("short"))}
		_, err := cfg.SigningKey()
		assert.Error(t, err)
	})
}
