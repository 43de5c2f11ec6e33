package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/notesapp/notes-backend/internal/localstate"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the notes service.
// Environment variables are automatically parsed from the NOTES_BACKEND_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver: sqlite, postgres, memory
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local build target)
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Folder images directory
	ImageDir string `envconfig:"IMAGE_DIR" default:""`

	// API keys in "key:userID" pairs, e.g. "sk_abc:alice,sk_def:bob".
	// Empty means local dev mode with the hardcoded dev key.
	APIKeys map[string]string `envconfig:"API_KEYS"`

	// LoginURL is where unauthenticated browsers get redirected.
	LoginURL string `envconfig:"LOGIN_URL" default:"/Users/Login"`

	// SeedDemoData creates a demo folder with a few notes for the dev user.
	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"false"`

	// Health check loop interval in seconds
	HealthIntervalSeconds int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"5"`

	// Startup wait for dependencies to report healthy
	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver and the local
// file locations when left on "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}
	allowedDB := map[string]bool{"sqlite": true, "postgres": true, "memory": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required for DB_DRIVER=postgres")
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		path, err := localstate.DBPath()
		if err != nil {
			return fmt.Errorf("derive sqlite path: %w", err)
		}
		c.SQLitePath = path
	}
	if c.ImageDir == "" {
		dir, err := localstate.ImagesPath()
		if err != nil {
			return fmt.Errorf("derive image dir: %w", err)
		}
		c.ImageDir = dir
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Variables are prefixed with NOTES_BACKEND_, e.g. NOTES_BACKEND_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NOTES_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("sqlite_path", cfg.SQLitePath).
		Str("image_dir", cfg.ImageDir).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Int("api_keys", len(cfg.APIKeys)).
		Bool("seed_demo_data", cfg.SeedDemoData).
		Msg("Configuration loaded")

	return &cfg, nil
}

// IsDevMode reports whether the hardcoded local dev key should be accepted.
func (c *Config) IsDevMode() bool {
	return len(c.APIKeys) == 0 && c.Environment != EnvProduction
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
