package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// PerformanceAPIURL is the base URL of the external performance API,
	// including its path prefix (e.g. http://localhost:5000/api).
	PerformanceAPIURL string
	UpstreamTimeout   time.Duration

	// RedisURL enables the read-through cache when non-empty.
	RedisURL       string
	CacheTTL       time.Duration
	RosterRefresh  time.Duration
	RateLimit      int
	MaxUploadBytes int64
	// DepartmentFetchConcurrency bounds parallel bundle fetches for the
	// department comparison view.
	DepartmentFetchConcurrency int
	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:                 getEnv("SERVER_PORT", "8080"),
		GinMode:                    getEnv("GIN_MODE", "debug"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogFormat:                  getEnv("LOG_FORMAT", "pretty"),
		PerformanceAPIURL:          strings.TrimRight(getEnv("PERFORMANCE_API_URL", "http://localhost:5000/api"), "/"),
		UpstreamTimeout:            time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		RedisURL:                   getEnv("REDIS_URL", ""),
		CacheTTL:                   time.Duration(getEnvInt("CACHE_TTL_SECONDS", 30)) * time.Second,
		RosterRefresh:              time.Duration(getEnvInt("ROSTER_REFRESH_SECONDS", 20)) * time.Second,
		RateLimit:                  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MaxUploadBytes:             int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,
		DepartmentFetchConcurrency: getEnvInt("DEPARTMENT_FETCH_CONCURRENCY", 8),
		AllowedOrigins:             parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// CacheEnabled reports whether the redis read-through cache should be used.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.CacheTTL > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
