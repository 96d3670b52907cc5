package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "https://api.brevo.com/v3/smtp/email", cfg.Brevo.Endpoint)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("BREVO_API_KEY", "k")
	t.Setenv("BREVO_SENDER_EMAIL", "noreply@example.com")
	t.Setenv("BREVO_SENDER_NAME", "Sync")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.True(t, cfg.Brevo.Configured())
}

func TestVendorConfigured(t *testing.T) {
	t.Run("incomplete email credentials", func(t *testing.T) {
		c := BrevoConfig{APIKey: "k", SenderEmail: "a@b.c"}
		assert.False(t, c.Configured())
	})

	t.Run("incomplete translator credentials", func(t *testing.T) {
		c := TranslatorConfig{APIKey: "k", Region: "westeurope"}
		assert.False(t, c.Configured())
	})

	t.Run("weather needs only key", func(t *testing.T) {
		assert.True(t, WeatherConfig{APIKey: "k"}.Configured())
		assert.False(t, WeatherConfig{}.Configured())
	})
}
