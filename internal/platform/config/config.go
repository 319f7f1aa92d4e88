package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// ScanCron is the cron expression for the daily obligation sweep.
	ScanCron string
	// ScanRateLimit throttles the manual scan endpoint, in ulule/limiter
	// formatted notation (e.g. "5-M" for five per minute).
	ScanRateLimit string
	// DefaultResponsibleUserID receives alert notifications when a branch
	// has no manager assigned.
	DefaultResponsibleUserID string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SCAN_CRON", "0 2 * * *")
	viper.SetDefault("SCAN_RATE_LIMIT", "5-M")
	viper.SetDefault("DEFAULT_RESPONSIBLE_USER_ID", "1")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.ScanCron = viper.GetString("SCAN_CRON")
	cfg.ScanRateLimit = viper.GetString("SCAN_RATE_LIMIT")
	cfg.DefaultResponsibleUserID = viper.GetString("DEFAULT_RESPONSIBLE_USER_ID")

	return cfg, nil
}
