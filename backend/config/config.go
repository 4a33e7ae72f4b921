// ABOUTME: Configuration loader for backend service
// ABOUTME: Loads settings from environment variables (optionally seeded by a .env file) with defaults

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MetricsEnabled     bool     // expose /metrics (default: true)

	// Catalog and scoring
	Catalog        string // built-in catalog name (default: "default")
	CatalogPath    string // catalog file; overrides Catalog when set
	VersionCompare string // lexical or semver (default: lexical)

	// Rate Limiting
	RateLimitEnabled bool    // Enable rate limiting (default: true)
	RateLimitRPS     float64 // Sustained requests per second per client (default: 20)
	RateLimitBurst   int     // Burst allowance per client (default: 40)

	// Batch recomputation
	BatchConcurrency int // plans computed in parallel per batch request (default: 4)
	BatchMaxItems    int // maximum items per batch request (default: 100)

	// Plan cache
	PlanCacheTTL        int // seconds a computed plan is reused for identical inputs; 0 disables (default: 300)
	PlanCacheMaxEntries int // distinct inputs kept at once (default: 10000)
}

// LoadDotEnv seeds the environment from the given files (default ".env").
// Variables already set are not overridden and missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("Failed to load env file", "file", f, "error", err)
			continue
		}
		slog.Debug("Loaded env file", "file", f)
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),

		Catalog:        getEnv("CATALOG", "default"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		VersionCompare: strings.ToLower(getEnv("VERSION_COMPARE", "lexical")),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 40),

		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 4),
		BatchMaxItems:    getEnvInt("BATCH_MAX_ITEMS", 100),

		PlanCacheTTL:        getEnvInt("PLAN_CACHE_TTL", 300),
		PlanCacheMaxEntries: getEnvInt("PLAN_CACHE_MAX_ENTRIES", 10000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port))
	}

	switch c.VersionCompare {
	case "lexical", "semver":
	default:
		errs = append(errs, fmt.Errorf("VERSION_COMPARE must be lexical or semver, got %q", c.VersionCompare))
	}

	if c.RateLimitRPS <= 0 || c.RateLimitRPS > 10000 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be between 0 and 10000, got %v", c.RateLimitRPS))
	}

	for _, v := range []struct {
		name  string
		value int
		max   int
	}{
		{"RATE_LIMIT_BURST", c.RateLimitBurst, 10000},
		{"BATCH_CONCURRENCY", c.BatchConcurrency, 256},
		{"BATCH_MAX_ITEMS", c.BatchMaxItems, 10000},
		{"PLAN_CACHE_MAX_ENTRIES", c.PlanCacheMaxEntries, 1000000},
	} {
		if v.value < 1 || v.value > v.max {
			errs = append(errs, fmt.Errorf("%s must be between 1 and %d, got %d", v.name, v.max, v.value))
		}
	}

	if c.PlanCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("PLAN_CACHE_TTL must not be negative, got %d", c.PlanCacheTTL))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
