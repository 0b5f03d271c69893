// Package config loads configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings.
type Config struct {
	Addr              string
	DatabaseURL       string
	RedisAddr         string
	AssetBaseURL      string
	AssetCheckTimeout time.Duration
	SessionTTL        time.Duration
	CacheSize         int
	ProfileSource     string
	ProfileConfig     string
	LetterProvider    string
	LetterModel       string
	OpenAIAPIKey      string
	GoogleAPIKey      string
	LetterHour        int
}

// Load reads env vars (and a .env file when present), applies defaults, and
// validates required fields.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:           os.Getenv("ADDR"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		AssetBaseURL:   os.Getenv("ASSET_BASE_URL"),
		ProfileSource:  os.Getenv("PROFILE_SOURCE"),
		ProfileConfig:  os.Getenv("PROFILE_CONFIG"),
		LetterProvider: os.Getenv("LETTER_PROVIDER"),
		LetterModel:    os.Getenv("LETTER_MODEL"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
	}

	cfg.AssetCheckTimeout = getEnvDuration("ASSET_CHECK_TIMEOUT", 3*time.Second)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", 30*time.Minute)
	cfg.CacheSize = getEnvInt("CACHE_SIZE", 256)
	cfg.LetterHour = getEnvInt("LETTER_HOUR", 22)

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ProfileSource == "" {
		if cfg.ProfileConfig != "" {
			cfg.ProfileSource = "file"
		} else {
			cfg.ProfileSource = "builtin"
		}
	}
	if cfg.LetterProvider == "" {
		cfg.LetterProvider = "openai"
	}
	if cfg.LetterModel == "" {
		cfg.LetterModel = "gpt-4o-mini"
	}

	if cfg.AssetBaseURL == "" {
		log.Fatal("ASSET_BASE_URL environment variable is required (e.g., https://assets.example.com/voices)")
	}

	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
