// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports the active catalog and version comparator

package handlers

import (
	"net/http"

	"github.com/markalston/workflow-sizer/backend/models"
)

// Health returns API health status including catalog details.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cat := h.engine.Catalog()
	h.writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:         "ok",
		Catalog:        cat.Name(),
		CatalogEntries: cat.Len(),
		Comparator:     h.engine.ComparatorName(),
	})
}
