// ABOUTME: Recommendation engine composing sizing, version scoring, advisories, and export
// ABOUTME: Stateless recompute over an injected catalog, with a bounded concurrent batch mode

package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/workflow-sizer/backend/models"
)

// Engine runs the full recommendation pipeline against one catalog
type Engine struct {
	catalog  *models.Catalog
	sizer    *SizingCalculator
	scorer   *VersionScorer
	advisor  *AdvisoryEngine
	exporter *ConfigExporter
}

// NewEngine creates an engine; a nil comparator means lexical
func NewEngine(catalog *models.Catalog, cmp VersionComparator) *Engine {
	return &Engine{
		catalog:  catalog,
		sizer:    NewSizingCalculator(),
		scorer:   NewVersionScorer(cmp),
		advisor:  NewAdvisoryEngine(),
		exporter: NewConfigExporter(),
	}
}

// Catalog returns the injected catalog
func (e *Engine) Catalog() *models.Catalog {
	return e.catalog
}

// ComparatorName returns the version comparator in use
func (e *Engine) ComparatorName() string {
	return e.scorer.Comparator().Name()
}

// Size runs the sizing stage only
func (e *Engine) Size(in models.Inputs) models.SizingResult {
	return e.sizer.Size(in.Hardware, in.Workload, in.Mode)
}

// Recompute derives a complete plan from one input snapshot.
// Inputs must already have passed ValidateInputs.
func (e *Engine) Recompute(in models.Inputs) (models.Plan, error) {
	sizing := e.sizer.Size(in.Hardware, in.Workload, in.Mode)

	versions, err := e.scorer.Recommend(e.catalog, sizing, in.Workload, in.SelectedVersion)
	if err != nil {
		return models.Plan{}, fmt.Errorf("scoring versions: %w", err)
	}

	cfg, err := e.exporter.Render(in, sizing)
	if err != nil {
		return models.Plan{}, err
	}

	return models.Plan{
		Inputs:     in,
		Sizing:     sizing,
		Versions:   versions,
		Advisories: e.advisor.Advise(sizing, in.Workload, in.Mode),
		Config:     cfg,
	}, nil
}

// ScoreCatalog scores every catalog entry for a plan's inputs, in catalog order
func (e *Engine) ScoreCatalog(plan models.Plan) []models.ScoredEntry {
	entries := e.catalog.Entries()
	scored := make([]models.ScoredEntry, len(entries))
	for i, entry := range entries {
		scored[i] = models.ScoredEntry{
			CatalogEntry: entry,
			Score:        e.scorer.Score(entry, plan.Sizing, plan.Inputs.Workload),
		}
	}
	return scored
}

// RecomputeBatch computes plans for several snapshots with at most limit in
// flight. Results keep request order; the first error cancels the rest.
func (e *Engine) RecomputeBatch(ctx context.Context, items []models.Inputs, limit int) ([]models.Plan, error) {
	plans := make([]models.Plan, len(items))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, in := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plan, err := e.Recompute(in)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
