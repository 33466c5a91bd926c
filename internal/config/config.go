package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatabaseURL             string
	HTTPPort                string
	ExchangeRate            decimal.Decimal // KRW per USD, constant snapshot
	DefaultCapital          decimal.Decimal
	DefaultCurrency         domain.Currency
	SimulationURL           string
	SimulationRetryMax      int
	SimulationRetryBaseWait time.Duration
	SnapshotWorkerInterval  time.Duration
	AdminAPIKey             string
	SheetsSpreadsheetID     string
	SheetsCredentialsJSON   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DatabaseURL:             envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:                envOrDefault("HTTP_PORT", "8000"),
		ExchangeRate:            envOrDefaultDecimal("EXCHANGE_RATE", "1425.5"),
		DefaultCapital:          envOrDefaultDecimal("DEFAULT_CAPITAL", "10000"),
		DefaultCurrency:         envOrDefaultCurrency("DEFAULT_CURRENCY", domain.USD),
		SimulationURL:           envOrDefault("SIMULATION_URL", "http://localhost:8100"),
		SimulationRetryMax:      envOrDefaultInt("SIMULATION_RETRY_MAX", 5),
		SimulationRetryBaseWait: envOrDefaultDuration("SIMULATION_RETRY_BASE_WAIT", 2*time.Second),
		SnapshotWorkerInterval:  envOrDefaultDuration("SNAPSHOT_WORKER_INTERVAL", 24*time.Hour),
		AdminAPIKey:             envOrDefault("ADMIN_API_KEY", ""),
		SheetsSpreadsheetID:     envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON:   envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultDecimal(key, defaultVal string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			slog.Warn("invalid decimal env var, using default", "key", key, "value", v, "default", defaultVal)
			return decimal.RequireFromString(defaultVal)
		}
		return d
	}
	return decimal.RequireFromString(defaultVal)
}

func envOrDefaultCurrency(key string, defaultVal domain.Currency) domain.Currency {
	if v := os.Getenv(key); v != "" {
		c, err := domain.ParseCurrency(v)
		if err != nil {
			slog.Warn("invalid currency env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return c
	}
	return defaultVal
}
