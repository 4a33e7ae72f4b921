// ABOUTME: End-to-end tests for the assembled HTTP server
// ABOUTME: Drives the full middleware chain and route table through an httptest server

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/workflow-sizer/backend/config"
	"github.com/markalston/workflow-sizer/backend/handlers"
	"github.com/markalston/workflow-sizer/backend/models"
)

const planBody = `{
	"hardware": {"cpu_cores": 8, "memory_gb": 16, "storage_gb": 200},
	"workload": {"expected_units": 150, "avg_subtasks_per_unit": 10, "concurrent_units": 10},
	"mode": "orchestrated",
	"version": "2.8.0"
}`

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		CORSAllowedOrigins: []string{"https://sizer.example.com"},
		MetricsEnabled:     true,
		Catalog:            "default",
		VersionCompare:     "lexical",
		RateLimitEnabled:   false,
		RateLimitRPS:       20,
		RateLimitBurst:     40,
		BatchConcurrency:   2,
		BatchMaxItems:      10,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	engine, err := newEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	server := httptest.NewServer(newMux(cfg, handlers.NewHandler(cfg, engine)))
	t.Cleanup(server.Close)
	return server
}

// TestPlanE2E runs Scenario B through the full server
func TestPlanE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp, err := http.Post(server.URL+"/api/v1/recommend", "application/json", strings.NewReader(planBody))
	if err != nil {
		t.Fatalf("Failed to post plan: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header to be set")
	}

	var plan models.Plan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("Failed to decode plan: %v", err)
	}

	if plan.Sizing.WorkerCount != 16 {
		t.Errorf("Expected 16 workers, got %d", plan.Sizing.WorkerCount)
	}
	if plan.Sizing.SchedulerCount != 2 {
		t.Errorf("Expected 2 schedulers, got %d", plan.Sizing.SchedulerCount)
	}
	if plan.Sizing.DBConnectionPoolSize != 100 {
		t.Errorf("Expected pool 100, got %d", plan.Sizing.DBConnectionPoolSize)
	}
	if plan.Versions.Recommended.Version != "2.8.0" || plan.Versions.Recommended.Score != 10 {
		t.Errorf("Expected 2.8.0 with score 10, got %s with %d",
			plan.Versions.Recommended.Version, plan.Versions.Recommended.Score)
	}
	if !strings.Contains(plan.Config, `EXECUTOR = "OrchestratedExecutor"`) {
		t.Errorf("Expected orchestrated executor in config:\n%s", plan.Config)
	}
}

func TestCORSPreflightE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/v1/recommend", nil)
	req.Header.Set("Origin", "https://sizer.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://sizer.example.com" {
		t.Errorf("Expected allowed origin echoed, got %q", got)
	}
}

func TestCORSDisallowedOriginE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header, got %q", got)
	}
}

func TestRateLimitE2E(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2
	server := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		resp, err := http.Get(server.URL + "/api/v1/catalog")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d should succeed, got %d", i+1, resp.StatusCode)
		}
	}

	resp, err := http.Get(server.URL + "/api/v1/catalog")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	// Health is exempt
	health, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Errorf("Expected health to bypass rate limit, got %d", health.StatusCode)
	}
}

func TestMetricsEndpointE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	// Generate at least one instrumented request
	resp, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "workflow_sizer_http_requests_total") {
		t.Error("Expected HTTP request counter in metrics output")
	}
}

func TestMetricsDisabledE2E(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	server := newTestServer(t, cfg)

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 with metrics disabled, got %d", resp.StatusCode)
	}
}

func TestNewEngine_RejectsUnknownComparator(t *testing.T) {
	cfg := testConfig()
	cfg.VersionCompare = "calver"
	if _, err := newEngine(cfg); err == nil {
		t.Error("Expected error for unknown comparator")
	}
}

func TestNewEngine_SemverExtended(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog = "extended"
	cfg.VersionCompare = "semver"

	engine, err := newEngine(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if engine.Catalog().Name() != "extended" || engine.ComparatorName() != "semver" {
		t.Errorf("Expected extended/semver, got %s/%s", engine.Catalog().Name(), engine.ComparatorName())
	}
}
