// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Store backends.
const (
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var (
	// ErrMissingClientID is returned when SPOTIFY_ID is not set.
	ErrMissingClientID = errors.New("missing SPOTIFY_ID environment variable")

	// ErrMissingDatabaseURL is returned when the postgres backend is selected
	// without DATABASE_URL.
	ErrMissingDatabaseURL = errors.New("STORE_BACKEND=postgres requires DATABASE_URL")

	// ErrUnknownBackend is returned for an unsupported STORE_BACKEND.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Config holds all runtime settings.
type Config struct {
	SpotifyClientID string `envconfig:"SPOTIFY_ID"`
	RedirectURI     string `envconfig:"REDIRECT_URI" default:"http://127.0.0.1:8080/"`
	APIBaseURL      string `envconfig:"SPOTIFY_API_BASE_URL" default:""`

	Addr    string        `envconfig:"ADDR" default:"127.0.0.1:8080"`
	ViewTTL time.Duration `envconfig:"VIEW_TTL" default:"12h"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"bolt"`
	StorePath    string `envconfig:"STORE_PATH" default:"data/blocify.db"`
	DatabaseURL  string `envconfig:"DATABASE_URL" default:""`
	TokenFile    string `envconfig:"TOKEN_FILE" default:""` // empty: user config dir

	RateLimitPerSecond int      `envconfig:"RATE_LIMIT_PER_SECOND" default:"2"`
	RateLimitBurst     int      `envconfig:"RATE_LIMIT_BURST" default:"5"`
	AllowedOrigins     []string `envconfig:"ALLOWED_ORIGINS" default:""`

	SentryDSN string `envconfig:"SENTRY_DSN" default:""`
	Release   string `envconfig:"RELEASE" default:""`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file and then the environment.
// It does not require SPOTIFY_ID; callers that need it use RequireClientID.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RequireClientID returns ErrMissingClientID if no client ID is configured.
func (c *Config) RequireClientID() error {
	if c.SpotifyClientID == "" {
		return ErrMissingClientID
	}
	return nil
}

// APIBase returns the Spotify API root override, normalised to end with a
// slash, or "" for the library default.
func (c *Config) APIBase() string {
	if c.APIBaseURL == "" || c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return c.APIBaseURL
	}
	return c.APIBaseURL + "/"
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendBolt, BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
	}
	return nil
}
