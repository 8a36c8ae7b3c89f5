package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultCNPJAKey is injected at build time:
//
//	go build -ldflags "-X github.com/octobees/sales-routes/api/internal/config.DefaultCNPJAKey=<key>"
var DefaultCNPJAKey = ""

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// RegistryConfig groups the CNPJ registry client settings.
type RegistryConfig struct {
	CNPJAKey        string
	CNPJABaseURL    string
	BrasilAPIURL    string
	Timeout         time.Duration
	PhoneRegion     string
	CacheTTL        time.Duration
	RateLimitLookup RateLimitConfig
}

// DatabaseConfig sizes the Postgres pool.
type DatabaseConfig struct {
	MaxConns int32
	MinConns int32
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL string
	Database    DatabaseConfig
	RedisURL    string
	JWTSecret   string
	Port        string
	LogLevel    string
	TokenTTL    time.Duration
	Registry    RegistryConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		Database: DatabaseConfig{
			MaxConns: parseInt32(getEnv("DB_MAX_CONNS", "5"), 5),
			MinConns: parseInt32(getEnv("DB_MIN_CONNS", "0"), 0),
		},
		Registry: RegistryConfig{
			CNPJAKey:     getEnv("CNPJA_API_KEY", DefaultCNPJAKey),
			CNPJABaseURL: getEnv("CNPJA_BASE_URL", "https://api.cnpja.com"),
			BrasilAPIURL: getEnv("BRASILAPI_BASE_URL", "https://brasilapi.com.br"),
			Timeout:      parseDuration(getEnv("REGISTRY_TIMEOUT", "10s"), 10*time.Second),
			PhoneRegion:  strings.ToUpper(getEnv("PHONE_REGION", "BR")),
			CacheTTL:     parseDuration(getEnv("REGISTRY_CACHE_TTL", "24h"), 24*time.Hour),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_LOOKUP", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOOKUP value: %w", err)
	}
	cfg.Registry.RateLimitLookup = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt32(input string, fallback int32) int32 {
	v, err := strconv.ParseInt(strings.TrimSpace(input), 10, 32)
	if err != nil || v < 0 {
		return fallback
	}
	return int32(v)
}
