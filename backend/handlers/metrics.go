// ABOUTME: Prometheus metrics for computed plans
// ABOUTME: Tracks plans by mode, recommended versions, advisories, and compute latency

package handlers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/markalston/workflow-sizer/backend/models"
)

var (
	plansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_sizer_plans_total",
			Help: "Total plans served by deployment mode, including cache hits",
		},
		[]string{"mode"},
	)

	recommendedVersionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_sizer_recommended_version_total",
			Help: "Times each catalog version was recommended",
		},
		[]string{"version"},
	)

	advisoriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_sizer_advisories_total",
			Help: "Advisories emitted by category and severity",
		},
		[]string{"category", "severity"},
	)

	planDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "workflow_sizer_plan_duration_seconds",
			Help:    "Time to compute one plan",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	planCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workflow_sizer_plan_cache_hits_total",
			Help: "Plans served from the plan cache",
		},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "workflow_sizer_batch_size",
			Help:    "Items per batch recommendation request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)
)

// recordPlan updates plan metrics for a freshly computed plan
func recordPlan(plan models.Plan, elapsed time.Duration) {
	countPlan(plan)
	planDuration.Observe(elapsed.Seconds())
}

// countPlan counts a served plan, computed or cached. Version labels come
// from the catalog, so their cardinality is bounded by its size.
func countPlan(plan models.Plan) {
	plansTotal.WithLabelValues(string(plan.Inputs.Mode)).Inc()
	recommendedVersionTotal.WithLabelValues(plan.Versions.Recommended.Version).Inc()
	for _, a := range plan.Advisories {
		advisoriesTotal.WithLabelValues(string(a.Category), string(a.Severity)).Inc()
	}
}
