// ABOUTME: Tests for sizing, recommendation, catalog, and export HTTP handlers
// ABOUTME: Exercises every route through a ServeMux built from the route table

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/markalston/workflow-sizer/backend/cache"
	"github.com/markalston/workflow-sizer/backend/catalog"
	"github.com/markalston/workflow-sizer/backend/config"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
)

// newTestMux registers every route the way main does, so path values resolve
func newTestMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Pattern(), route.Handler)
	}
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

const scenarioABody = `{
	"hardware": {"cpu_cores": 4, "memory_gb": 8, "storage_gb": 100},
	"workload": {"expected_units": 50, "avg_subtasks_per_unit": 10, "concurrent_units": 10},
	"mode": "standalone",
	"version": "2.8.0"
}`

func TestHealthHandler(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp models.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Expected status ok, got %s", resp.Status)
	}
	if resp.Catalog != "default" || resp.CatalogEntries != 9 {
		t.Errorf("Expected default catalog with 9 entries, got %s with %d", resp.Catalog, resp.CatalogEntries)
	}
	if resp.Comparator != "lexical" {
		t.Errorf("Expected lexical comparator, got %s", resp.Comparator)
	}
}

func TestListCatalog(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/catalog", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp models.CatalogResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Entries) != 9 {
		t.Fatalf("Expected 9 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Version != "2.6.0" || resp.Entries[8].Version != "3.0.0" {
		t.Errorf("Expected catalog order preserved, got %s..%s", resp.Entries[0].Version, resp.Entries[8].Version)
	}
}

func TestGetCatalogEntry(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/catalog/2.9.0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var entry models.CatalogEntry
	if err := json.NewDecoder(w.Body).Decode(&entry); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if entry.Status != models.StatusLatest || entry.MinRuntime != "3.9" {
		t.Errorf("Unexpected entry %+v", entry)
	}
}

func TestGetCatalogEntry_NotFoundWithSuggestions(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/catalog/2.8.1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Suggestions) == 0 || resp.Suggestions[0] != "2.8.0" {
		t.Errorf("Expected suggestions starting with 2.8.0, got %v", resp.Suggestions)
	}
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected code 404 in body, got %d", resp.Code)
	}
}

func TestGetCatalogEntry_InvalidVersion(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/catalog/-bad", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestSizingHandler(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodPost, "/api/v1/sizing", scenarioABody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var sizing models.SizingResult
	if err := json.NewDecoder(w.Body).Decode(&sizing); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if sizing.WorkerCount != 8 || sizing.DBConnectionPoolSize != 50 {
		t.Errorf("Unexpected sizing %+v", sizing)
	}
	if sizing.CPUUtilizationPct != 125.0 {
		t.Errorf("Expected cpu 125.0, got %v", sizing.CPUUtilizationPct)
	}
}

func TestRecommendHandler_ScenarioA(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodPost, "/api/v1/recommend", scenarioABody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan models.Plan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if plan.Versions.Recommended.Version != "2.8.0" {
		t.Errorf("Expected recommended 2.8.0, got %s", plan.Versions.Recommended.Version)
	}
	if !plan.Versions.SelectedIsOptimal {
		t.Error("Expected selected version to be optimal")
	}
	if len(plan.Advisories) != 3 {
		t.Errorf("Expected 3 advisories, got %d", len(plan.Advisories))
	}
	if !strings.Contains(plan.Config, "WORKERS = 8") {
		t.Errorf("Expected config block in plan, got %q", plan.Config)
	}
}

func TestRecommendHandler_DefaultsModeAndAcceptsAliases(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	body := `{"hardware":{"cpu_cores":4,"memory_gb":8,"storage_gb":100},
		"workload":{"expected_units":150,"avg_subtasks_per_unit":10,"concurrent_units":10},
		"mode":"kubernetes"}`
	w := do(t, mux, http.MethodPost, "/api/v1/recommend", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan models.Plan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if plan.Inputs.Mode != models.ModeOrchestrated {
		t.Errorf("Expected orchestrated mode, got %s", plan.Inputs.Mode)
	}
	if plan.Inputs.SelectedVersion != "2.8.0" {
		t.Errorf("Expected default version 2.8.0, got %s", plan.Inputs.SelectedVersion)
	}
	if plan.Sizing.SchedulerCount != 2 {
		t.Errorf("Expected 2 schedulers, got %d", plan.Sizing.SchedulerCount)
	}
}

func TestRecommendHandler_UnknownVersion(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	body := strings.Replace(scenarioABody, `"2.8.0"`, `"2.8.1"`, 1)
	w := do(t, mux, http.MethodPost, "/api/v1/recommend", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var plan models.Plan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if plan.Versions.CurrentFound || plan.Versions.Current != nil {
		t.Errorf("Expected current not found, got %+v", plan.Versions.Current)
	}
	if plan.Versions.Recommended.Version != "2.8.0" {
		t.Errorf("Expected recommended 2.8.0, got %s", plan.Versions.Recommended.Version)
	}
}

func TestRecommendHandler_RejectsInvalidInputs(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"hardware":`, "Invalid JSON"},
		{"unknown field", `{"hardware":{"cpu_cores":4},"ram":8}`, "Invalid JSON"},
		{"zero cpu", strings.Replace(scenarioABody, `"cpu_cores": 4`, `"cpu_cores": 0`, 1), "Invalid inputs"},
		{"negative units", strings.Replace(scenarioABody, `"expected_units": 50`, `"expected_units": -5`, 1), "Invalid inputs"},
		{"unknown mode", strings.Replace(scenarioABody, `"standalone"`, `"mainframe"`, 1), "Invalid inputs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, mux, http.MethodPost, "/api/v1/recommend", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Error != tt.want {
				t.Errorf("Expected error %q, got %q", tt.want, resp.Error)
			}
		})
	}
}

func TestRecommendHandler_BodyTooLarge(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	large := `{"hardware":{"cpu_cores":4},"pad":"` + strings.Repeat("x", maxRequestBodySize) + `"}`
	w := do(t, mux, http.MethodPost, "/api/v1/recommend", large)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Request body too large") {
		t.Errorf("Expected body-too-large error, got %s", w.Body.String())
	}
}

func TestRecommendHandler_EmptyCatalogIs500(t *testing.T) {
	engine := services.NewEngine(models.NewCatalog("empty", nil), nil)
	mux := newTestMux(NewHandler(nil, engine))

	w := do(t, mux, http.MethodPost, "/api/v1/recommend", scenarioABody)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestRecommendHandler_MethodNotAllowed(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/recommend", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestExportHandler(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodPost, "/api/v1/export", scenarioABody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected text/plain, got %s", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "# Recommended Orchestrator Configuration\n") {
		t.Errorf("Unexpected export body:\n%s", body)
	}
	if !strings.Contains(body, "MAX_OVERFLOW = 13\n") {
		t.Errorf("Expected MAX_OVERFLOW = 13 in export:\n%s", body)
	}
}

func TestRecommendBatchHandler(t *testing.T) {
	cfg := &config.Config{BatchConcurrency: 2, BatchMaxItems: 3}
	mux := newTestMux(NewHandler(cfg, nil))

	orchestrated := strings.Replace(scenarioABody, `"standalone"`, `"orchestrated"`, 1)
	body := fmt.Sprintf(`{"items":[%s,%s]}`, scenarioABody, orchestrated)

	w := do(t, mux, http.MethodPost, "/api/v1/recommend/batch", body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.BatchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Plans) != 2 {
		t.Fatalf("Expected 2 plans, got %d", len(resp.Plans))
	}
	if resp.Plans[0].Sizing.SchedulerCount != 1 || resp.Plans[1].Sizing.SchedulerCount != 2 {
		t.Errorf("Expected plans in request order, got schedulers %d and %d",
			resp.Plans[0].Sizing.SchedulerCount, resp.Plans[1].Sizing.SchedulerCount)
	}
}

func TestRecommendBatchHandler_Limits(t *testing.T) {
	cfg := &config.Config{BatchConcurrency: 2, BatchMaxItems: 2}
	mux := newTestMux(NewHandler(cfg, nil))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", `{"items":[]}`, "Batch must contain at least one item"},
		{"too many", fmt.Sprintf(`{"items":[%s,%s,%s]}`, scenarioABody, scenarioABody, scenarioABody), "Batch too large"},
		{"invalid item", fmt.Sprintf(`{"items":[%s,%s]}`, scenarioABody, strings.Replace(scenarioABody, `"memory_gb": 8`, `"memory_gb": 0`, 1)), "Invalid inputs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, mux, http.MethodPost, "/api/v1/recommend/batch", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Error != tt.want {
				t.Errorf("Expected error %q, got %q", tt.want, resp.Error)
			}
		})
	}
}

func TestNewHandler_ZeroConfigKeepsDefaults(t *testing.T) {
	h := NewHandler(&config.Config{}, nil)
	if h.batchConcurrency != defaultBatchConcurrency || h.batchMaxItems != defaultBatchMaxItems {
		t.Errorf("Expected default batch limits, got %d / %d", h.batchConcurrency, h.batchMaxItems)
	}
}

func TestHandler_SemverEngine(t *testing.T) {
	ext, err := catalog.Builtin("extended")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	mux := newTestMux(NewHandler(nil, services.NewEngine(ext, services.SemverComparator{})))

	w := do(t, mux, http.MethodPost, "/api/v1/recommend", scenarioABody)
	var plan models.Plan
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&plan); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if plan.Versions.Recommended.Version != "2.10.0" {
		t.Errorf("Expected 2.10.0 under semver, got %s", plan.Versions.Recommended.Version)
	}
}

func TestOpenAPISpecHandler(t *testing.T) {
	mux := newTestMux(NewHandler(nil, nil))

	w := do(t, mux, http.MethodGet, "/api/v1/openapi.yaml", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Expected application/yaml, got %s", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "openapi: 3.0.3") {
		t.Error("Expected OpenAPI document body")
	}
}

func TestRecommendHandler_PlanCache(t *testing.T) {
	h := NewHandler(nil, nil)
	plans := cache.New[models.Inputs, models.Plan](time.Minute)
	h.SetPlanCache(plans)
	mux := newTestMux(h)

	for i := 0; i < 2; i++ {
		w := do(t, mux, http.MethodPost, "/api/v1/recommend", scenarioABody)
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, w.Code)
		}
	}
	if plans.Len() != 1 {
		t.Errorf("Expected one cached plan, got %d", plans.Len())
	}

	// Aliased mode normalizes to the same key
	aliased := strings.Replace(scenarioABody, `"standalone"`, `""`, 1)
	if w := do(t, mux, http.MethodPost, "/api/v1/export", aliased); w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if plans.Len() != 1 {
		t.Errorf("Expected normalized inputs to share a cache entry, got %d", plans.Len())
	}
}

func TestRecommendHandler_CacheHitsAreCounted(t *testing.T) {
	h := NewHandler(nil, nil)
	h.SetPlanCache(cache.New[models.Inputs, models.Plan](time.Minute))
	mux := newTestMux(h)

	plansBefore := testutil.ToFloat64(plansTotal.WithLabelValues("standalone"))
	versionBefore := testutil.ToFloat64(recommendedVersionTotal.WithLabelValues("2.8.0"))
	queueBefore := testutil.ToFloat64(advisoriesTotal.WithLabelValues("queueing", "warning"))
	hitsBefore := testutil.ToFloat64(planCacheHits)

	for i := 0; i < 2; i++ {
		if w := do(t, mux, http.MethodPost, "/api/v1/recommend", scenarioABody); w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, w.Code)
		}
	}

	if got := testutil.ToFloat64(planCacheHits) - hitsBefore; got != 1 {
		t.Errorf("Expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(plansTotal.WithLabelValues("standalone")) - plansBefore; got != 2 {
		t.Errorf("Expected both served plans counted, got %v", got)
	}
	if got := testutil.ToFloat64(recommendedVersionTotal.WithLabelValues("2.8.0")) - versionBefore; got != 2 {
		t.Errorf("Expected both recommendations counted, got %v", got)
	}
	if got := testutil.ToFloat64(advisoriesTotal.WithLabelValues("queueing", "warning")) - queueBefore; got != 2 {
		t.Errorf("Expected both queueing advisories counted, got %v", got)
	}
}
