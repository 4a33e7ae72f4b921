// ABOUTME: HTTP handler container and shared JSON helpers for the sizing API
// ABOUTME: Holds the configured engine and batch limits; decodes and validates request bodies

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/markalston/workflow-sizer/backend/cache"
	"github.com/markalston/workflow-sizer/backend/catalog"
	"github.com/markalston/workflow-sizer/backend/config"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
)

const maxRequestBodySize = 1 << 20 // 1MB

const (
	defaultBatchConcurrency = 4
	defaultBatchMaxItems    = 100
)

type Handler struct {
	engine           *services.Engine
	plans            *cache.Cache[models.Inputs, models.Plan]
	batchConcurrency int
	batchMaxItems    int
}

// NewHandler creates a handler. A nil cfg uses default batch limits and a nil
// engine uses the default catalog with lexical comparison.
func NewHandler(cfg *config.Config, engine *services.Engine) *Handler {
	if engine == nil {
		engine = services.NewEngine(catalog.Default(), nil)
	}

	h := &Handler{
		engine:           engine,
		batchConcurrency: defaultBatchConcurrency,
		batchMaxItems:    defaultBatchMaxItems,
	}
	if cfg != nil && cfg.BatchConcurrency > 0 {
		h.batchConcurrency = cfg.BatchConcurrency
	}
	if cfg != nil && cfg.BatchMaxItems > 0 {
		h.batchMaxItems = cfg.BatchMaxItems
	}
	return h
}

// SetPlanCache enables reuse of computed plans for identical normalized inputs.
func (h *Handler) SetPlanCache(c *cache.Cache[models.Inputs, models.Plan]) {
	h.plans = c
}

// writeJSON writes a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeErrorDetails writes a JSON error response with details.
func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeErrorDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// decodeInputs decodes, normalizes, and validates one input snapshot.
func (h *Handler) decodeInputs(w http.ResponseWriter, r *http.Request) (models.Inputs, bool) {
	var in models.Inputs
	if !h.decodeJSON(w, r, &in) {
		return in, false
	}

	in = services.NormalizeInputs(in)
	if err := services.ValidateInputs(in); err != nil {
		h.writeErrorDetails(w, "Invalid inputs", err.Error(), http.StatusBadRequest)
		return in, false
	}
	return in, true
}
