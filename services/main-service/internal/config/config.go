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
	AppEnv string

	HTTPAddr    string
	DatabaseURL string

	MigrationsEnabled bool

	// Stats service
	StatsURL     string
	StatsApp     string
	StatsTimeout time.Duration

	// Optional admin guard; empty secret leaves /admin open (dev).
	AdminJWTSecret string
	AdminJWTIssuer string

	// Rate limiting. With RedisURL set the counter lives in redis.
	RedisURL  string
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// InMemory reports whether the service runs on the in-memory store.
func (c *Config) InMemory() bool {
	return c.DatabaseURL == ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.MigrationsEnabled = getBool("MIGRATIONS_ENABLED", true)

	cfg.StatsURL = strings.TrimRight(getEnv("STATS_URL", "http://localhost:9090"), "/")
	cfg.StatsApp = getEnv("STATS_APP", "ewm-main-service")
	cfg.StatsTimeout = getDuration("STATS_TIMEOUT", 2*time.Second)

	cfg.AdminJWTSecret = getEnv("ADMIN_JWT_SECRET", "")
	cfg.AdminJWTIssuer = getEnv("ADMIN_JWT_ISSUER", "")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.RLEnabled = getBool("RL_ENABLED", true)
	cfg.RLLimit = getIntEnv("RL_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// dev may run without a database (in-memory store); everything else needs one
	if cfg.DatabaseURL == "" && cfg.AppEnv != "dev" {
		return nil, fmt.Errorf("missing DATABASE_URL (required when APP_ENV != dev)")
	}
	if cfg.AppEnv != "dev" && cfg.AdminJWTSecret == "" {
		return nil, fmt.Errorf("missing ADMIN_JWT_SECRET (required when APP_ENV != dev)")
	}
	if cfg.RLLimit <= 0 {
		return nil, fmt.Errorf("RL_LIMIT must be > 0")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
