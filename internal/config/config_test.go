package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

var envVars = []string{
	"SPOTIFY_ID",
	"REDIRECT_URI",
	"SPOTIFY_API_BASE_URL",
	"ADDR",
	"VIEW_TTL",
	"STORE_BACKEND",
	"STORE_PATH",
	"DATABASE_URL",
	"TOKEN_FILE",
	"RATE_LIMIT_PER_SECOND",
	"RATE_LIMIT_BURST",
	"ALLOWED_ORIGINS",
	"SENTRY_DSN",
	"RELEASE",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// clearEnv unsets all config variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"RedirectURI", cfg.RedirectURI, "http://127.0.0.1:8080/"},
		{"Addr", cfg.Addr, "127.0.0.1:8080"},
		{"ViewTTL", cfg.ViewTTL, 12 * time.Hour},
		{"StoreBackend", cfg.StoreBackend, BackendBolt},
		{"StorePath", cfg.StorePath, "data/blocify.db"},
		{"RateLimitPerSecond", cfg.RateLimitPerSecond, 2},
		{"RateLimitBurst", cfg.RateLimitBurst, 5},
		{"AllowedOrigins", len(cfg.AllowedOrigins), 0},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "text"},
		{"APIBase", cfg.APIBase(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTIFY_ID", "client-123")
	t.Setenv("ADDR", "0.0.0.0:9000")
	t.Setenv("VIEW_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SPOTIFY_API_BASE_URL", "http://127.0.0.1:9999/v1")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SpotifyClientID != "client-123" {
		t.Errorf("SpotifyClientID = %q", cfg.SpotifyClientID)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ViewTTL != 30*time.Minute {
		t.Errorf("ViewTTL = %v, want 30m", cfg.ViewTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.APIBase() != "http://127.0.0.1:9999/v1/" {
		t.Errorf("APIBase() = %q, want trailing slash", cfg.APIBase())
	}
	if err := cfg.RequireClientID(); err != nil {
		t.Errorf("RequireClientID() error = %v", err)
	}
}

func TestRequireClientID(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireClientID(); !errors.Is(err, ErrMissingClientID) {
		t.Errorf("RequireClientID() error = %v, want ErrMissingClientID", err)
	}
}

func TestLoadBackendValidation(t *testing.T) {
	tests := []struct {
		name        string
		backend     string
		databaseURL string
		wantErr     error
	}{
		{"bolt", "bolt", "", nil},
		{"memory", "memory", "", nil},
		{"postgres with url", "postgres", "postgres://localhost/blocify", nil},
		{"postgres without url", "postgres", "", ErrMissingDatabaseURL},
		{"unknown", "redis", "", ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORE_BACKEND", tt.backend)
			if tt.databaseURL != "" {
				t.Setenv("DATABASE_URL", tt.databaseURL)
			}

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIEW_TTL", "forever")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for bad VIEW_TTL")
	}
}
