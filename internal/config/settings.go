package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sravani-1304/weather-application/internal/urls"
)

const (
	defaultListen = ":8080"
)

// Environment variable names.
const (
	EnvAPIKey         = "WEATHER_API_KEY"
	EnvAPIKeyFallback = "OPENWEATHER_API_KEY"
	EnvBaseURL        = "WEATHER_BASE_URL"
	EnvTimeout        = "WEATHER_TIMEOUT"
	EnvListen         = "WEATHER_LISTEN"
	EnvLogLevel       = "WEATHER_LOG_LEVEL"
	EnvLogFile        = "WEATHER_LOG_FILE"
)

// Settings holds runtime configuration. Command-line flags are applied on
// top of these values by the caller.
type Settings struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration // 0 = no client-side timeout
	Listen   string
	LogLevel string
	LogFile  string
}

// LoadSettings reads configuration from environment variables (optionally .env).
// Variables already set in the environment take precedence over the file.
func LoadSettings() (Settings, error) {
	_ = godotenv.Load(".env") // ignore missing file
	return settingsFromLookup(os.LookupEnv)
}

func settingsFromLookup(lookup func(string) (string, bool)) (Settings, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Settings{
		APIKey:   get(EnvAPIKey),
		BaseURL:  get(EnvBaseURL),
		Listen:   get(EnvListen),
		LogLevel: get(EnvLogLevel),
		LogFile:  get(EnvLogFile),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = get(EnvAPIKeyFallback)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = urls.CurrentWeatherAPI
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}

	if v := get(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		if d < 0 {
			return cfg, fmt.Errorf("invalid %s: must not be negative", EnvTimeout)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}
