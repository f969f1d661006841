package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DB_URL", "SQLITE_PATH", "SEED_INPUT", "DEFAULT_CURRENCY", "LOG_LEVEL", "DB_MAX_CONNS", "DB_DIAL_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, "file:invoices.db?_pragma=foreign_keys(1)", cfg.Database.SQLitePath)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 3*time.Second, cfg.Database.DialTimeout)
	assert.Equal(t, "EUR", cfg.Seed.DefaultCurrency)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_DIAL_TIMEOUT", "bogus")
	t.Setenv("SEED_INPUT", "docs.json")
	t.Setenv("DEFAULT_CURRENCY", "usd")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.Database.DSN)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, 3*time.Second, cfg.Database.DialTimeout, "unparseable values keep the default")
	assert.Equal(t, "docs.json", cfg.Seed.InputPath)
	assert.Equal(t, "USD", cfg.Seed.DefaultCurrency)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{SQLitePath: "file:x.db"},
			Seed:     SeedConfig{InputPath: "docs.json", DefaultCurrency: "EUR"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no input", func(c *Config) { c.Seed.InputPath = " " }},
		{"bad currency", func(c *Config) { c.Seed.DefaultCurrency = "EURO" }},
		{"no database", func(c *Config) { c.Database.SQLitePath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, HasCode(err, CodeConfig))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INVOICE_LEDGER_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("INVOICE_LEDGER_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("INVOICE_LEDGER_TEST_KEY"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("INVOICE_LEDGER_TEST_KEY"))
}
