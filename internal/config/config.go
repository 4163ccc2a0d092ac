package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	ProfileAPIBaseURL    string
	SessionTTLMinutes    int
	OpportunitiesRetries int
	// TokenFile points at a local token.json used to authenticate
	// opportunity fetches when a request carries no bearer token.
	// Local development only; empty in production.
	TokenFile string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		ProfileAPIBaseURL:    getEnv("PROFILE_API_BASE_URL", "https://api.huesapply.com"),
		SessionTTLMinutes:    getEnvInt("SESSION_TTL_MINUTES", 30),
		OpportunitiesRetries: getEnvInt("OPPORTUNITIES_RETRY_ATTEMPTS", 3),
		TokenFile:            getEnv("TOKEN_FILE", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
