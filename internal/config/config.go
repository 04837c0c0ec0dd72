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

// Config holds the configuration for the sentiment analysis service.
// Environment variables are automatically parsed from the SENTIMENT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Inference model endpoint (the local model server)
	InferenceURL string `envconfig:"INFERENCE_URL" default:"http://127.0.0.1:8000"`

	// Blob store (S3-compatible; endpoint override for MinIO)
	S3Endpoint  string `envconfig:"S3_ENDPOINT" default:""`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"sentiment-media"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" default:""`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" default:""`

	// Upload limits
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"104857600"`

	// Health monitoring
	HealthInterval time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`

	// DevMode swaps the store-backed authorizer for the hardcoded dev key.
	DevMode bool `envconfig:"DEV_MODE" default:"false"`
}

// Validate checks invariants that envconfig defaults cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.InferenceURL == "" {
		return fmt.Errorf("INFERENCE_URL must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %d", c.MaxUploadBytes)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with SENTIMENT_
// Example: SENTIMENT_HTTP_PORT, SENTIMENT_INFERENCE_URL
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SENTIMENT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("inference_url", cfg.InferenceURL).
		Str("s3_bucket", cfg.S3Bucket).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Bool("dev_mode", cfg.DevMode).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:    EnvTesting,
		HTTPPort:       8080,
		InferenceURL:   "http://127.0.0.1:8000",
		S3Region:       "us-east-1",
		S3Bucket:       "sentiment-media-test",
		MaxUploadBytes: 1 << 20,
		HealthInterval: time.Second,
		DevMode:        true,
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
