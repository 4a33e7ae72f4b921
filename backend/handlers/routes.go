// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path pattern (e.g., "/api/v1/catalog/{version}")
	Handler http.HandlerFunc // Handler function
}

// Pattern returns the route in net/http ServeMux pattern form.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Catalog
		{Method: http.MethodGet, Path: "/api/v1/catalog", Handler: h.ListCatalog},
		{Method: http.MethodGet, Path: "/api/v1/catalog/{version}", Handler: h.GetCatalogEntry},

		// Recommendation
		{Method: http.MethodPost, Path: "/api/v1/sizing", Handler: h.Sizing},
		{Method: http.MethodPost, Path: "/api/v1/recommend", Handler: h.Recommend},
		{Method: http.MethodPost, Path: "/api/v1/recommend/batch", Handler: h.RecommendBatch},
		{Method: http.MethodPost, Path: "/api/v1/export", Handler: h.Export},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
