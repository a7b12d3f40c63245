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

	JWTSecret string

	// StatsTTL is how long the aggregate counters snapshot stays fresh.
	StatsTTL time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// CORSAllowOrigins is the comma-separated list of allowed origins.
	CORSAllowOrigins string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Real environment variables override .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("STATS_TTL", "5m")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	statsTTL, err := time.ParseDuration(viper.GetString("STATS_TTL"))
	if err != nil {
		log.Printf("Warning: invalid STATS_TTL %q, defaulting to 5m\n", viper.GetString("STATS_TTL"))
		statsTTL = 5 * time.Minute
	}
	cfg.StatsTTL = statsTTL

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetString("CORS_ALLOW_ORIGINS")

	return cfg, nil
}
