// ABOUTME: Entry point for the workflow sizer backend service
// ABOUTME: Serves the sizing and recommendation HTTP API with graceful shutdown

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markalston/workflow-sizer/backend/cache"
	"github.com/markalston/workflow-sizer/backend/catalog"
	"github.com/markalston/workflow-sizer/backend/config"
	"github.com/markalston/workflow-sizer/backend/handlers"
	"github.com/markalston/workflow-sizer/backend/logger"
	"github.com/markalston/workflow-sizer/backend/middleware"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize structured logging
	logger.Init()

	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		slog.Error("Failed to initialize engine", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Workflow Sizer Backend")
	slog.Info("Catalog loaded",
		"catalog", engine.Catalog().Name(),
		"entries", engine.Catalog().Len(),
		"comparator", engine.ComparatorName(),
	)
	if cfg.RateLimitEnabled {
		slog.Info("Rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := handlers.NewHandler(cfg, engine)
	if cfg.PlanCacheTTL > 0 {
		ttl := time.Duration(cfg.PlanCacheTTL) * time.Second
		plans := cache.NewBounded[models.Inputs, models.Plan](ttl, cfg.PlanCacheMaxEntries)
		go plans.Run(ctx, time.Minute)
		h.SetPlanCache(plans)
		slog.Info("Plan cache initialized", "ttl", ttl, "max_entries", cfg.PlanCacheMaxEntries)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}

// newEngine resolves the configured catalog and comparator.
func newEngine(cfg *config.Config) (*services.Engine, error) {
	cat, err := catalog.Resolve(cfg.Catalog, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	cmp, err := services.ComparatorByName(cfg.VersionCompare)
	if err != nil {
		return nil, err
	}
	return services.NewEngine(cat, cmp), nil
}

// newMux registers every API route behind the shared middleware chain.
func newMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	cors := middleware.CORSWithConfig(cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	preflight := make(map[string]bool)
	for _, route := range h.Routes() {
		pattern := route.Pattern()

		// Health stays reachable for probes when clients are throttled
		var rl middleware.Middleware
		if limiter != nil && route.Path != "/api/v1/health" {
			rl = middleware.RateLimit(limiter, middleware.ClientIP)
		}

		mux.HandleFunc(pattern, middleware.Chain(route.Handler,
			middleware.Recover,
			middleware.LogRequest,
			cors,
			rl,
			middleware.Instrument(pattern),
		))

		// Preflight requests share the path but not the method
		if !preflight[route.Path] {
			preflight[route.Path] = true
			mux.HandleFunc("OPTIONS "+route.Path, middleware.Chain(notAllowed, cors))
		}
	}

	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	return mux
}

// notAllowed answers OPTIONS requests that are not CORS preflights.
func notAllowed(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}
