package config

import (
	"os"
	"strconv"
	"time"
)

// APIConfig holds the HTTP-facing configuration.
type APIConfig struct {
	Port           string
	AllowedOrigins string
	CacheTTL       time.Duration
	FetchTimeout   time.Duration
	RateLimitRPS   float64
	DatabaseURL    string
}

// LoadAPIConfig reads the API configuration from the environment.
func LoadAPIConfig() *APIConfig {
	return &APIConfig{
		Port:           getEnv("PORT", "5001"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		CacheTTL:       getEnvDuration("CACHE_TTL", time.Hour),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 120*time.Second),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
