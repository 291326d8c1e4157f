package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults point at the public demo backend so the binary runs without any
// environment at all.
const (
	defaultAPIURL       = "https://larek-api.nomoreparties.co/api/weblarek"
	defaultCDNURL       = "https://larek-api.nomoreparties.co/content/weblarek"
	defaultHTTPTimeout  = 5 * time.Second
	defaultAPIRateLimit = 5.0
)

type Config struct {
	APIURL       string
	CDNURL       string
	AppEnv       string
	HTTPTimeout  time.Duration
	APIRateLimit float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:       envOr("API_URL", defaultAPIURL),
		CDNURL:       envOr("CDN_URL", defaultCDNURL),
		AppEnv:       os.Getenv("APP_ENV"),
		HTTPTimeout:  envSeconds("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeout),
		APIRateLimit: envFloat("API_RATE_LIMIT", defaultAPIRateLimit),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
