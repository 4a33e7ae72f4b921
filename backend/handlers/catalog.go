// ABOUTME: HTTP handlers for release catalog lookups
// ABOUTME: Lists catalog entries and resolves single versions with did-you-mean suggestions

package handlers

import (
	"net/http"

	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
)

// ListCatalog returns the active catalog in catalog order.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	cat := h.engine.Catalog()
	h.writeJSON(w, http.StatusOK, models.CatalogResponse{
		Name:       cat.Name(),
		Comparator: h.engine.ComparatorName(),
		Entries:    cat.Entries(),
	})
}

// GetCatalogEntry returns one release, or 404 with close matches.
func (h *Handler) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	if err := services.ValidateVersionID(version); err != nil {
		h.writeErrorDetails(w, "Invalid version", err.Error(), http.StatusBadRequest)
		return
	}

	cat := h.engine.Catalog()
	entry, ok := cat.Lookup(version)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, models.ErrorResponse{
			Error:       "Version not found in catalog",
			Details:     version,
			Suggestions: services.SuggestVersions(cat, version),
			Code:        http.StatusNotFound,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, entry)
}
