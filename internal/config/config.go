package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Auth     AuthConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AuthConfig holds settings for verifying tokens issued by the external
// identity service. This backend never issues tokens itself.
type AuthConfig struct {
	JWTSecret string
}

// JobsConfig holds batch job configuration.
type JobsConfig struct {
	// ReconcileCron is the schedule for the daily reconciliation run,
	// standard 5-field cron syntax.
	ReconcileCron string
	// WorkerLimit bounds concurrent per-assignment updates so the batch
	// does not saturate the inventory ledger's write throughput.
	WorkerLimit int
	// RecordTimeout bounds the read-aggregate-write cycle for a single
	// assignment; a timed-out record is retried on the next run.
	RecordTimeout time.Duration
}

func Load() (*Config, error) {
	// .env is optional; deployed environments use real env vars.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "fieldops"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Auth = AuthConfig{
		JWTSecret: getEnv("JWT_SECRET_KEY", ""),
	}

	workerLimit, err := strconv.Atoi(getEnv("JOBS_WORKER_LIMIT", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOBS_WORKER_LIMIT: %w", err)
	}

	recordTimeout, err := time.ParseDuration(getEnv("JOBS_RECORD_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOBS_RECORD_TIMEOUT: %w", err)
	}

	config.Jobs = JobsConfig{
		// Default 00:15 UTC, after the cohort day has fully elapsed.
		ReconcileCron: getEnv("JOBS_RECONCILE_CRON", "15 0 * * *"),
		WorkerLimit:   workerLimit,
		RecordTimeout: recordTimeout,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Jobs.WorkerLimit < 1 {
		return fmt.Errorf("JOBS_WORKER_LIMIT must be at least 1")
	}
	if c.Jobs.RecordTimeout <= 0 {
		return fmt.Errorf("JOBS_RECORD_TIMEOUT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
