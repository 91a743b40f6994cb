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

	// AssertionSecret verifies the capability assertions callers present.
	// The assertion issuer signs with the same key.
	AssertionSecret string

	// Redis report cache
	RedisURL       string
	ReportCacheTTL time.Duration

	// Reconciliation matcher date window, in days
	MatchWindowDays int

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
	viper.SetDefault("ASSERTION_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REPORT_CACHE_TTL", "15m")
	viper.SetDefault("MATCH_WINDOW_DAYS", 3)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.AssertionSecret = viper.GetString("ASSERTION_SECRET")
	if cfg.AssertionSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: ASSERTION_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Report caching is disabled.")
	}

	cacheTTLStr := viper.GetString("REPORT_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 15 * time.Minute
		if cacheTTLStr != "" {
			log.Printf("Warning: Invalid value for REPORT_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
		}
	}
	cfg.ReportCacheTTL = cacheTTL

	cfg.MatchWindowDays = viper.GetInt("MATCH_WINDOW_DAYS")
	if cfg.MatchWindowDays <= 0 {
		log.Printf("Warning: Invalid value for MATCH_WINDOW_DAYS (%d). Defaulting to 3.\n", cfg.MatchWindowDays)
		cfg.MatchWindowDays = 3
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
