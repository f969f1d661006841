package common

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Seed     SeedConfig
	LogLevel slog.Level
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	SQLitePath       string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// SeedConfig holds configuration for one pipeline run
type SeedConfig struct {
	InputPath       string
	ExportPath      string
	DefaultCurrency string
}

// LoadEnvFile loads a .env file into the process environment if one exists.
// Variables already set in the environment win.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			SQLitePath:       getEnv("SQLITE_PATH", "file:invoices.db?_pragma=foreign_keys(1)"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Seed: SeedConfig{
			InputPath:       getEnv("SEED_INPUT", ""),
			ExportPath:      getEnv("SEED_EXPORT", ""),
			DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", constants.DefaultCurrency)),
		},
		LogLevel: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(value)); err == nil {
			return lvl
		}
	}
	return defaultValue
}

var reCurrency = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Seed.InputPath) == "" {
		return NewAppError(CodeConfig, "SEED_INPUT (or -input) is required", ErrInvalidInput)
	}
	if !reCurrency.MatchString(c.Seed.DefaultCurrency) {
		return NewAppError(CodeConfig, "DEFAULT_CURRENCY must be a 3-letter ISO 4217 code", ErrInvalidInput)
	}
	if c.Database.DSN == "" && c.Database.SQLitePath == "" {
		return NewAppError(CodeConfig, "one of DB_URL or SQLITE_PATH is required", ErrInvalidInput)
	}
	return nil
}
