package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_URL", "")
		t.Setenv("CDN_URL", "")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "")
		t.Setenv("API_RATE_LIMIT", "")

		cfg := LoadConfig()

		assert.Equal(t, defaultAPIURL, cfg.APIURL)
		assert.Equal(t, defaultCDNURL, cfg.CDNURL)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 5.0, cfg.APIRateLimit)
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("API_URL", "https://shop.example/api")
		t.Setenv("CDN_URL", "https://shop.example/content")
		t.Setenv("APP_ENV", "production")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "15")
		t.Setenv("API_RATE_LIMIT", "2.5")

		cfg := LoadConfig()

		assert.Equal(t, "https://shop.example/api", cfg.APIURL)
		assert.Equal(t, "https://shop.example/content", cfg.CDNURL)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 2.5, cfg.APIRateLimit)
	})

	t.Run("GarbageFallsBackToDefaults", func(t *testing.T) {
		t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")
		t.Setenv("API_RATE_LIMIT", "-1")

		cfg := LoadConfig()

		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 5.0, cfg.APIRateLimit)
	})
}
