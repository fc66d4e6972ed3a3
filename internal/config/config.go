package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FundamentalsURL        string
	FundamentalsRetryMax   int
	FundamentalsRetryDelay time.Duration
	DatabaseURL            string
	StatementFrequency     string
	RefreshTickers         []string
	RefreshInterval        time.Duration
	HTTPPort               string
	AdminAPIKey            string
	SheetsSpreadsheetID    string
	SheetsCredentialsJSON  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FundamentalsURL:        envOrDefault("FUNDAMENTALS_URL", "https://fundamentals.example.com/api"),
		FundamentalsRetryMax:   envOrDefaultInt("FUNDAMENTALS_RETRY_MAX", 5),
		FundamentalsRetryDelay: envOrDefaultDuration("FUNDAMENTALS_RETRY_BASE_DELAY", 2*time.Second),
		DatabaseURL:            envOrDefaultWarn("DATABASE_URL", ""),
		StatementFrequency:     envOrDefault("STATEMENT_FREQUENCY", "annual"),
		RefreshTickers:         envOrDefaultList("REFRESH_TICKERS", nil),
		RefreshInterval:        envOrDefaultDuration("REFRESH_INTERVAL", 24*time.Hour),
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:            envOrDefault("ADMIN_API_KEY", ""),
		SheetsSpreadsheetID:    envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON:  envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
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

// envOrDefaultList parses a comma-separated env var, trimming whitespace and
// uppercasing entries (ticker symbols).
func envOrDefaultList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.ToUpper(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
