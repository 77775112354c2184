package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// External rate service
	RateAPIBaseURL string
	RateCacheTTL   time.Duration

	// Exception reporting
	PosthogAPIKey string

	// Requests per minute per client IP, 0 disables rate limiting
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_API_BASE_URL", "https://api.frankfurter.dev/v1")
	viper.SetDefault("RATE_CACHE_TTL", "24h")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 100)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.RateAPIBaseURL = viper.GetString("RATE_API_BASE_URL")

	rateCacheTTLStr := viper.GetString("RATE_CACHE_TTL")
	rateCacheTTL, err := time.ParseDuration(rateCacheTTLStr)
	if err != nil {
		rateCacheTTL = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", rateCacheTTLStr, rateCacheTTL)
	}
	cfg.RateCacheTTL = rateCacheTTL

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")

	return cfg, nil
}
