package config

import (
	"errors"  // Error construction
	"strings" // String manipulation
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // Environment lookup with defaults
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DatabaseURL    string        // PostgreSQL connection string
	JWTSecret      string        // JWT secret key
	TokenTTL       time.Duration // Lifetime of issued tokens
	RedisAddr      string        // Redis server address, empty disables the cache
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	CacheTTL       time.Duration // Lifetime of cached reads
	AdminUsername  string        // Username seeded by the migrate command
	AdminPassword  string        // Password seeded by the migrate command
	TrustedProxies []string      // Proxies gin trusts for client IPs
	IsProd         bool          // Is production environment
}

// Errors returned by Load when a required variable is missing
var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
	ErrMissingSecret      = errors.New("SECRET_KEY is not set")
)

// LoadConfig loads configuration from environment variables without validating it
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "5000")
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("TRUSTED_PROXIES", "127.0.0.1")

	return &Config{
		AppPort:        v.GetString("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		JWTSecret:      v.GetString("SECRET_KEY"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPass:      v.GetString("REDIS_PASS"),
		RedisDB:        v.GetInt("REDIS_DB"),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		IsProd:         v.GetString("NODE_ENV") == "production",
	}
}

// Load loads the configuration and checks the variables the server cannot run without
func Load() (*Config, error) {
	cfg := LoadConfig()
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
