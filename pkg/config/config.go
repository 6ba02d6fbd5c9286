package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// CompanyName is printed in the Company column of every exported
	// spreadsheet row. Threaded explicitly instead of hard-coded so exports
	// stay deterministic under test.
	CompanyName string

	// Receipt fetching limits for archive exports.
	ReceiptFetchTimeout     time.Duration
	ReceiptFetchParallelism int

	// RateLimit is an ulule/limiter formatted spec, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("COMPANY_NAME", "NotaSpese S.r.l.")
	viper.SetDefault("RECEIPT_FETCH_TIMEOUT", "10s")
	viper.SetDefault("RECEIPT_FETCH_PARALLELISM", 4)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.CompanyName = viper.GetString("COMPANY_NAME")

	fetchTimeoutStr := viper.GetString("RECEIPT_FETCH_TIMEOUT")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil {
		fetchTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for RECEIPT_FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", fetchTimeoutStr, fetchTimeout)
	}
	cfg.ReceiptFetchTimeout = fetchTimeout

	cfg.ReceiptFetchParallelism = viper.GetInt("RECEIPT_FETCH_PARALLELISM")
	if cfg.ReceiptFetchParallelism < 1 {
		cfg.ReceiptFetchParallelism = 1
		log.Println("Warning: RECEIPT_FETCH_PARALLELISM must be at least 1. Defaulting to 1.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
