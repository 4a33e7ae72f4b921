package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Catalog != "default" {
		t.Errorf("Expected default catalog, got %s", cfg.Catalog)
	}
	if cfg.VersionCompare != "lexical" {
		t.Errorf("Expected lexical comparison, got %s", cfg.VersionCompare)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("Expected 20 rps / 40 burst, got %v / %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.BatchConcurrency != 4 || cfg.BatchMaxItems != 100 {
		t.Errorf("Expected batch 4 / 100, got %d / %d", cfg.BatchConcurrency, cfg.BatchMaxItems)
	}
	if !cfg.MetricsEnabled {
		t.Error("Expected metrics enabled by default")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PlanCacheTTL != 300 {
		t.Errorf("Expected plan cache TTL 300, got %d", cfg.PlanCacheTTL)
	}
	if cfg.PlanCacheMaxEntries != 10000 {
		t.Errorf("Expected plan cache max entries 10000, got %d", cfg.PlanCacheMaxEntries)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                   "9090",
		"CATALOG":                "extended",
		"CATALOG_PATH":           "/etc/sizer/catalog.yaml",
		"VERSION_COMPARE":        "SemVer",
		"CORS_ALLOWED_ORIGINS":   "http://localhost:3000, https://sizer.example.com,",
		"RATE_LIMIT_ENABLED":     "false",
		"RATE_LIMIT_RPS":         "2.5",
		"BATCH_CONCURRENCY":      "8",
		"METRICS_ENABLED":        "0",
		"PLAN_CACHE_TTL":         "0",
		"PLAN_CACHE_MAX_ENTRIES": "500",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.Catalog != "extended" || cfg.CatalogPath != "/etc/sizer/catalog.yaml" {
		t.Errorf("Expected catalog overrides, got %s / %s", cfg.Catalog, cfg.CatalogPath)
	}
	if cfg.VersionCompare != "semver" {
		t.Errorf("Expected semver, got %s", cfg.VersionCompare)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://sizer.example.com" {
		t.Errorf("Expected two trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("Expected 2.5 rps, got %v", cfg.RateLimitRPS)
	}
	if cfg.BatchConcurrency != 8 {
		t.Errorf("Expected batch concurrency 8, got %d", cfg.BatchConcurrency)
	}
	if cfg.MetricsEnabled {
		t.Error("Expected metrics disabled")
	}
	if cfg.PlanCacheTTL != 0 {
		t.Errorf("Expected plan cache disabled, got %d", cfg.PlanCacheTTL)
	}
	if cfg.PlanCacheMaxEntries != 500 {
		t.Errorf("Expected 500 cache entries, got %d", cfg.PlanCacheMaxEntries)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"PORT": "70000"}, "PORT"},
		{"bad comparator", map[string]string{"VERSION_COMPARE": "calver"}, "VERSION_COMPARE"},
		{"zero rps", map[string]string{"RATE_LIMIT_RPS": "0"}, "RATE_LIMIT_RPS"},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST"},
		{"negative concurrency", map[string]string{"BATCH_CONCURRENCY": "-1"}, "BATCH_CONCURRENCY"},
		{"huge batch", map[string]string{"BATCH_MAX_ITEMS": "100000"}, "BATCH_MAX_ITEMS"},
		{"negative cache ttl", map[string]string{"PLAN_CACHE_TTL": "-1"}, "PLAN_CACHE_TTL"},
		{"zero cache entries", map[string]string{"PLAN_CACHE_MAX_ENTRIES": "0"}, "PLAN_CACHE_MAX_ENTRIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))

			_, err := Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_UnparseableFallsBackToDefault(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"BATCH_MAX_ITEMS":    "lots",
		"RATE_LIMIT_ENABLED": "maybe",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.BatchMaxItems != 100 {
		t.Errorf("Expected default 100, got %d", cfg.BatchMaxItems)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected default rate limiting enabled")
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"PORT": "7000"}))

	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9999\nCATALOG=extended\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Expected existing PORT to win, got %s", cfg.Port)
	}
	if cfg.Catalog != "extended" {
		t.Errorf("Expected CATALOG from env file, got %s", cfg.Catalog)
	}
}
