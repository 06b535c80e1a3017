package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the serene service.
// Environment variables are parsed with the SERENE_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived unless overridden
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8000"`

	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`

	// Generative AI
	GeminiAPIKey        string  `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel         string  `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-lite"`
	GeminiBaseURL       string  `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	GeminiTemperature   float64 `envconfig:"GEMINI_TEMPERATURE" default:"0.7"`
	AITimeoutSeconds    int     `envconfig:"AI_TIMEOUT_SECONDS" default:"30"`
	AIMaxRetries        int     `envconfig:"AI_MAX_RETRIES" default:"2"`
	AIDailyQuotaPerUser int     `envconfig:"AI_DAILY_QUOTA_PER_USER" default:"200"`

	// Auth
	AllowMockToken bool   `envconfig:"ALLOW_MOCK_TOKEN" default:"true"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:""`

	// Health and startup
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"10"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver and SQLitePath when unset.
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

	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = "data/serene.db"
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("SERENE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.GeminiTemperature < 0 || c.GeminiTemperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be within [0,2], got %v", c.GeminiTemperature)
	}
	if c.AIMaxRetries < 0 {
		return fmt.Errorf("AI_MAX_RETRIES must not be negative")
	}
	if c.Environment == EnvProduction && c.AllowMockToken {
		return fmt.Errorf("ALLOW_MOCK_TOKEN must be false in production")
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: SERENE_HTTP_PORT, SERENE_GEMINI_API_KEY
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SERENE", &cfg); err != nil {
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
		Str("gemini_model", cfg.GeminiModel).
		Bool("gemini_key_present", cfg.GeminiAPIKey != "").
		Bool("jwt_secret_present", cfg.JWTSecret != "").
		Bool("allow_mock_token", cfg.AllowMockToken).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:               "local",
		DBDriver:                  "sqlite",
		Environment:               EnvTesting,
		HTTPPort:                  8000,
		SQLitePath:                ":memory:",
		GeminiModel:               "gemini-2.0-flash-lite",
		GeminiBaseURL:             "http://127.0.0.1:0",
		GeminiTemperature:         0.7,
		AITimeoutSeconds:          5,
		AIMaxRetries:              0,
		AIDailyQuotaPerUser:       50,
		AllowMockToken:            true,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
		BootstrapTimeoutSeconds:   1,
	}
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

// AITimeout is the per-request deadline for the generative AI provider.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutSeconds) * time.Second
}
