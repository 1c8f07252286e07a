package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestSettingsFromLookup(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantKey     string
		wantBaseURL string
		wantTimeout time.Duration
		wantListen  string
	}{
		{
			name:        "defaults",
			env:         map[string]string{},
			wantKey:     "",
			wantBaseURL: "https://api.openweathermap.org/data/2.5/weather",
			wantListen:  ":8080",
		},
		{
			name: "primary key wins",
			env: map[string]string{
				EnvAPIKey:         "primary",
				EnvAPIKeyFallback: "fallback",
			},
			wantKey:     "primary",
			wantBaseURL: "https://api.openweathermap.org/data/2.5/weather",
			wantListen:  ":8080",
		},
		{
			name: "fallback key",
			env: map[string]string{
				EnvAPIKey:         "   ",
				EnvAPIKeyFallback: "fallback",
			},
			wantKey:     "fallback",
			wantBaseURL: "https://api.openweathermap.org/data/2.5/weather",
			wantListen:  ":8080",
		},
		{
			name: "overrides",
			env: map[string]string{
				EnvBaseURL: "http://localhost:9000/weather",
				EnvTimeout: "2500ms",
				EnvListen:  "127.0.0.1:9090",
			},
			wantBaseURL: "http://localhost:9000/weather",
			wantTimeout: 2500 * time.Millisecond,
			wantListen:  "127.0.0.1:9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := settingsFromLookup(lookupFrom(tt.env))
			if err != nil {
				t.Fatalf("settingsFromLookup() error = %v", err)
			}
			if cfg.APIKey != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", cfg.APIKey, tt.wantKey)
			}
			if cfg.BaseURL != tt.wantBaseURL {
				t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, tt.wantBaseURL)
			}
			if cfg.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tt.wantTimeout)
			}
			if cfg.Listen != tt.wantListen {
				t.Errorf("Listen = %q, want %q", cfg.Listen, tt.wantListen)
			}
		})
	}
}

func TestSettingsFromLookup_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		_, err := settingsFromLookup(lookupFrom(map[string]string{EnvTimeout: v}))
		if err == nil {
			t.Errorf("settingsFromLookup(%s=%q) should fail", EnvTimeout, v)
		}
	}
}

func TestLoadSettings_Environment(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.APIKey)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
