package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL       string
	MigrationsEnabled bool

	// Per-IP limit on POST /hit, requests per minute. 0 disables it.
	RateLimitPerIP int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":9090"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MigrationsEnabled: getEnvBool("MIGRATIONS_ENABLED", true),
		RateLimitPerIP:    getEnvInt("RATE_LIMIT_PER_IP", 0),
		HTTPReadTimeout:   getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout:  getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	if cfg.RateLimitPerIP < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_IP must be >= 0")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
