package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	// Upstream endpoints
	UpstreamBaseURL    string // profile pages (HTML)
	PracticeAPIBaseURL string // internal practice API (JSON)

	// Outbound call policy
	ProfileTimeoutSeconds int
	APITimeoutSeconds     int
	RetryAttempts         int
	RetryBaseDelayMs      int

	// Rate limiting (per client address, fixed windows)
	RateLimitPerMinute int
	RateLimitPerHour   int
	RateLimitPerDay    int

	// Memoization of calendar/contest lookups
	CacheCapacity   int
	CacheTTLSeconds int // 0 = entries live until evicted by capacity

	// Optional Redis storage for rate limiting (shared across instances)
	RedisURL      string
	RedisPassword string

	// CORS
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		UpstreamBaseURL:    strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "https://auth.geeksforgeeks.org"), "/"),
		PracticeAPIBaseURL: strings.TrimRight(getEnv("PRACTICE_API_BASE_URL", "https://practiceapi.geeksforgeeks.org"), "/"),

		ProfileTimeoutSeconds: getEnvInt("PROFILE_TIMEOUT_SECONDS", 30),
		APITimeoutSeconds:     getEnvInt("API_TIMEOUT_SECONDS", 10),
		RetryAttempts:         getEnvInt("RETRY_ATTEMPTS", 3),
		RetryBaseDelayMs:      getEnvInt("RETRY_BASE_DELAY_MS", 1000),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		RateLimitPerHour:   getEnvInt("RATE_LIMIT_PER_HOUR", 50),
		RateLimitPerDay:    getEnvInt("RATE_LIMIT_PER_DAY", 200),

		CacheCapacity:   getEnvInt("CACHE_CAPACITY", 100),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 0),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimRight(o, "/"))
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
