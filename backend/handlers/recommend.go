// ABOUTME: HTTP handlers for sizing, recommendation, batch, and config export
// ABOUTME: Validates inputs at the boundary then delegates to the recommendation engine

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/workflow-sizer/backend/middleware"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
)

// Sizing runs only the capacity sizing stage.
func (h *Handler) Sizing(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInputs(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.Size(in))
}

// Recommend returns the full plan for one input snapshot.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInputs(w, r)
	if !ok {
		return
	}

	plan, ok := h.recompute(w, r, in)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, plan)
}

// Export returns only the configuration block as plain text.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInputs(w, r)
	if !ok {
		return
	}

	plan, ok := h.recompute(w, r, in)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orchestrator.cfg"`)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, plan.Config)
}

// RecommendBatch computes plans for several snapshots concurrently.
func (h *Handler) RecommendBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if len(req.Items) == 0 {
		h.writeError(w, "Batch must contain at least one item", http.StatusBadRequest)
		return
	}
	if len(req.Items) > h.batchMaxItems {
		h.writeErrorDetails(w, "Batch too large",
			fmt.Sprintf("%d items exceeds the limit of %d", len(req.Items), h.batchMaxItems),
			http.StatusBadRequest)
		return
	}

	for i := range req.Items {
		req.Items[i] = services.NormalizeInputs(req.Items[i])
		if err := services.ValidateInputs(req.Items[i]); err != nil {
			h.writeErrorDetails(w, "Invalid inputs", fmt.Sprintf("item %d: %v", i, err), http.StatusBadRequest)
			return
		}
	}

	start := time.Now()
	plans, err := h.engine.RecomputeBatch(r.Context(), req.Items, h.batchConcurrency)
	if err != nil {
		slog.Error("Batch recompute failed",
			"request_id", middleware.RequestID(r.Context()),
			"items", len(req.Items),
			"error", err,
		)
		h.writeErrorDetails(w, "Failed to compute recommendations", err.Error(), http.StatusInternalServerError)
		return
	}

	elapsed := time.Since(start)
	for _, p := range plans {
		recordPlan(p, elapsed/time.Duration(len(plans)))
	}
	batchSize.Observe(float64(len(plans)))

	h.writeJSON(w, http.StatusOK, models.BatchResponse{Plans: plans})
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request, in models.Inputs) (models.Plan, bool) {
	if h.plans != nil {
		if plan, ok := h.plans.Get(in); ok {
			planCacheHits.Inc()
			countPlan(plan)
			return plan, true
		}
	}

	start := time.Now()
	plan, err := h.engine.Recompute(in)
	if err != nil {
		slog.Error("Recompute failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		h.writeErrorDetails(w, "Failed to compute recommendation", err.Error(), http.StatusInternalServerError)
		return plan, false
	}

	recordPlan(plan, time.Since(start))
	if h.plans != nil {
		h.plans.Set(in, plan)
	}
	slog.Debug("Plan computed",
		"request_id", middleware.RequestID(r.Context()),
		"mode", plan.Inputs.Mode,
		"workers", plan.Sizing.WorkerCount,
		"recommended", plan.Versions.Recommended.Version,
		"warnings", plan.WarningCount(),
	)
	return plan, true
}
