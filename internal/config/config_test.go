package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("DELIVERY_FEE", "20")
		t.Setenv("FREE_DELIVERY_THRESHOLD", "500")
		t.Setenv("SESSION_TTL", "2h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, int64(20), cfg.DeliveryFee)
		assert.Equal(t, int64(500), cfg.FreeDeliveryThreshold)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	})

	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("APP_PORT", "")
		t.Setenv("DELIVERY_FEE", "")
		t.Setenv("FREE_DELIVERY_THRESHOLD", "")
		t.Setenv("WHATSAPP_NUMBER", "")
		t.Setenv("SESSION_TTL", "")
		t.Setenv("PG_LISTEN", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, int64(15), cfg.DeliveryFee)
		assert.Equal(t, int64(300), cfg.FreeDeliveryThreshold)
		assert.Equal(t, "+212641973545", cfg.WhatsAppNumber)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.True(t, cfg.PGListen)
	})

	t.Run("PGListenDisabled", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PG_LISTEN", "false")
		t.Setenv("APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.PGListen)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("InvalidPGListen", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PG_LISTEN", "maybe")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("MissingDBHost", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingDBHost)
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("InvalidFee", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DELIVERY_FEE", "-3")

		_, err := Load()
		assert.Error(t, err)
	})
}
