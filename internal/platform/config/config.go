package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate fetching
	BaseCurrency        string
	ExchangeRateAPIURL  string
	ExchangeRateAPIKey  string
	ExchangeHostURL     string
	ProviderTimeout     time.Duration
	RateRefreshInterval time.Duration

	// Conversion
	FeePercentage        decimal.Decimal
	RestrictedCurrencies []string

	// Reconciliation
	ReconciliationFrequency    string
	ThresholdPercentage        decimal.Decimal
	SignificantChangeThreshold decimal.Decimal
	NotifyOnSignificantChanges bool
	FreezePeriods              []string

	// Rate limiting, e.g. "100-M" for 100 requests per minute
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
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_HOST_URL", "https://api.exchangerate.host")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "24h")
	viper.SetDefault("FEE_PERCENTAGE", "0.0025")
	viper.SetDefault("RESTRICTED_CURRENCIES", "")
	viper.SetDefault("RECONCILIATION_FREQUENCY", "monthly")
	viper.SetDefault("THRESHOLD_PERCENTAGE", "0.1")
	viper.SetDefault("SIGNIFICANT_CHANGE_THRESHOLD", "5")
	viper.SetDefault("NOTIFY_ON_SIGNIFICANT_CHANGES", true)
	viper.SetDefault("FREEZE_PERIODS", "")
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

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGE_RATE_API_URL")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	cfg.ExchangeHostURL = viper.GetString("EXCHANGE_HOST_URL")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. The primary rate provider will be skipped.")
	}

	providerTimeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", providerTimeoutStr, providerTimeout.String())
	}
	cfg.ProviderTimeout = providerTimeout

	refreshIntervalStr := viper.GetString("RATE_REFRESH_INTERVAL")
	refreshInterval, err := time.ParseDuration(refreshIntervalStr)
	if err != nil {
		refreshInterval = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshIntervalStr, refreshInterval.String())
	}
	cfg.RateRefreshInterval = refreshInterval

	cfg.FeePercentage = parseDecimal("FEE_PERCENTAGE", "0.0025")
	cfg.ThresholdPercentage = parseDecimal("THRESHOLD_PERCENTAGE", "0.1")
	cfg.SignificantChangeThreshold = parseDecimal("SIGNIFICANT_CHANGE_THRESHOLD", "5")

	cfg.RestrictedCurrencies = splitList(viper.GetString("RESTRICTED_CURRENCIES"))
	cfg.FreezePeriods = splitList(viper.GetString("FREEZE_PERIODS"))

	cfg.ReconciliationFrequency = viper.GetString("RECONCILIATION_FREQUENCY")
	cfg.NotifyOnSignificantChanges = viper.GetBool("NOTIFY_ON_SIGNIFICANT_CHANGES")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// parseDecimal reads a decimal-valued variable, falling back to the given default
// when the value does not parse.
func parseDecimal(key, fallback string) decimal.Decimal {
	raw := viper.GetString(key)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		value, _ = decimal.NewFromString(fallback)
	}
	return value
}

// splitList parses a comma-separated variable into trimmed, non-empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}
