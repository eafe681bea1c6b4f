package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Storage backend names
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server
	APIPort int

	// Public address of the API, used to build public object URLs when the
	// local storage backend is active
	PublicBaseURL string

	// Storage
	StorageBackend    string // "local" or "s3"
	ObjectStoragePath string // local backend
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3Bucket          string
	S3Region          string
	S3PublicBaseURL   string

	// Preview
	ScreenshotEndpoint string
	ScreenshotAPIKey   string

	// Logging
	LogLevel string

	// Security
	APIKey         string
	AllowedOrigins string
	AppEnv         string

	// Rate Limiting
	RateLimitRequests float64
	RateLimitBurst    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Required: DATABASE_URL
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	// API_PORT (default: 8080)
	apiPort := os.Getenv("API_PORT")
	if apiPort == "" {
		cfg.APIPort = 8080
	} else {
		port, err := strconv.Atoi(apiPort)
		if err != nil {
			return nil, fmt.Errorf("API_PORT must be a valid integer: %w", err)
		}
		cfg.APIPort = port
	}

	// PUBLIC_BASE_URL (default: http://localhost:<port>)
	cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.APIPort)
	}

	// STORAGE_BACKEND (default: local)
	cfg.StorageBackend = os.Getenv("STORAGE_BACKEND")
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = StorageBackendLocal
	}
	if cfg.StorageBackend != StorageBackendLocal && cfg.StorageBackend != StorageBackendS3 {
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q", StorageBackendLocal, StorageBackendS3)
	}

	// OBJECT_STORAGE_PATH (default: ./objects)
	cfg.ObjectStoragePath = os.Getenv("OBJECT_STORAGE_PATH")
	if cfg.ObjectStoragePath == "" {
		cfg.ObjectStoragePath = "./objects"
	}

	// S3-compatible storage settings
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3Region = os.Getenv("S3_REGION")
	if cfg.S3Region == "" {
		cfg.S3Region = "auto"
	}
	cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")

	// Screenshot preview service
	cfg.ScreenshotEndpoint = os.Getenv("SCREENSHOT_ENDPOINT")
	if cfg.ScreenshotEndpoint == "" {
		cfg.ScreenshotEndpoint = "https://api.screenshotmachine.com"
	}
	cfg.ScreenshotAPIKey = os.Getenv("SCREENSHOT_API_KEY")

	// LOG_LEVEL (default: info)
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Security configuration
	cfg.APIKey = os.Getenv("API_KEY")
	cfg.AllowedOrigins = os.Getenv("ALLOWED_ORIGINS")
	cfg.AppEnv = os.Getenv("APP_ENV")
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	// Rate limiting configuration
	if rps := os.Getenv("RATE_LIMIT_REQUESTS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			cfg.RateLimitRequests = v
		}
	} else {
		cfg.RateLimitRequests = 10.0
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if v, err := strconv.Atoi(burst); err == nil {
			cfg.RateLimitBurst = v
		}
	} else {
		cfg.RateLimitBurst = 20
	}

	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Production-specific validation
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DatabaseURL cannot be empty")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("APIPort must be between 1 and 65535")
	}
	if c.StorageBackend == StorageBackendLocal && c.ObjectStoragePath == "" {
		return fmt.Errorf("ObjectStoragePath cannot be empty for the local storage backend")
	}
	if c.StorageBackend == StorageBackendS3 {
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
		}
		if c.S3PublicBaseURL == "" {
			return fmt.Errorf("S3_PUBLIC_BASE_URL is required for the s3 storage backend")
		}
	}
	return nil
}

// ValidateProduction performs additional validation for production environment
func (c *Config) ValidateProduction() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required in production")
	}

	if c.AllowedOrigins == "" {
		return fmt.Errorf("ALLOWED_ORIGINS is required in production")
	}

	// Check for wildcard in production
	if strings.Contains(c.AllowedOrigins, "*") {
		return fmt.Errorf("wildcard (*) origins are not allowed in production")
	}

	// Check for sslmode=disable in database URL
	if strings.Contains(c.DatabaseURL, "sslmode=disable") {
		return fmt.Errorf("sslmode=disable is not allowed in production")
	}

	return nil
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.Int("api_port", c.APIPort),
		slog.String("public_base_url", c.PublicBaseURL),
		slog.String("storage_backend", c.StorageBackend),
		slog.String("storage_path", c.ObjectStoragePath),
		slog.String("log_level", c.LogLevel),
		slog.String("app_env", c.AppEnv),
		slog.Bool("api_key_set", c.APIKey != ""),
		slog.Bool("allowed_origins_set", c.AllowedOrigins != ""),
		slog.Bool("screenshot_key_set", c.ScreenshotAPIKey != ""),
		slog.Float64("rate_limit_rps", c.RateLimitRequests),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
	)
}
