package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/dermocheck/backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Gemini configuration, shared by the generation and the locator
	// connectors
	GeminiCfg GeminiConfig `envPrefix:"GEMINI_"`

	// Consultation session configuration
	ConsultCfg ConsultConfig `envPrefix:"CONSULT_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Image upload configuration
	ImageUploadCfg ImageUploadConfig `envPrefix:"IMAGE_UPLOAD_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GeminiConfig configures the model used for generation and the maps
// grounding search.
type GeminiConfig struct {
	APIKey string               `env:"API_KEY"`
	Model  string               `env:"MODEL" envDefault:"gemini-2.5-flash"`
	Retry  pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ConsultConfig bounds the in-memory session registry.
type ConsultConfig struct {
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT,notEmpty"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE,notEmpty"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST,notEmpty"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT,notEmpty"` // seconds
}

// ImageUploadConfig holds photo attachment limits
type ImageUploadConfig struct {
	MaxFileSize  int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`   // 5 MiB
	MaxTotalSize int64 `env:"MAX_TOTAL_SIZE" envDefault:"26214400"` // 25 MiB
	MaxFileCount int   `env:"MAX_FILE_COUNT" envDefault:"4"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if !cfg.EnableMocks && cfg.GeminiCfg.APIKey == "" {
		errors = append(errors, "GEMINI_API_KEY must be set when mocks are disabled")
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.ConsultCfg.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("CONSULT_SESSION_TTL must be at least 1m, got %s", cfg.ConsultCfg.SessionTTL))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
