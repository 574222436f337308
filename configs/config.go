package configs

import (
	"log"
	"os"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Quote    QuoteConfig
	Account  AccountConfig
	Audit    AuditConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// QuoteConfig holds quote API configuration
type QuoteConfig struct {
	URL    string
	APIKey string
}

// AccountConfig holds account policy configuration
type AccountConfig struct {
	// StartingCash is the seed balance for new accounts
	StartingCash decimal.Decimal

	// IncludeZeroPositions retains zero-share symbols in portfolio views
	IncludeZeroPositions bool
}

// AuditConfig holds ledger audit configuration
type AuditConfig struct {
	Schedule string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Quote: QuoteConfig{
			URL:    getEnv("QUOTE_API_URL", "https://cloud.iexapis.com"),
			APIKey: getEnv("QUOTE_API_KEY", ""),
		},
		Account: AccountConfig{
			StartingCash:         getDecimalEnv("STARTING_CASH", "10000.00"),
			IncludeZeroPositions: getEnv("INCLUDE_ZERO_POSITIONS", "") == "true",
		},
		Audit: AuditConfig{
			Schedule: getEnv("AUDIT_SCHEDULE", "0 * * * *"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDecimalEnv parses a decimal environment variable, falling back to
// the default on missing or malformed values.
func getDecimalEnv(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("[WARN] Invalid %s=%q, using default %s", key, raw, defaultValue)
		value, _ = decimal.NewFromString(defaultValue)
	}
	return value
}
