// ABOUTME: Tests for the results pane
// ABOUTME: Renders real plans from the sizing engine and checks the visible content

package results

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/backend/catalog"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
)

func computePlan(t *testing.T, in models.Inputs) (*models.Plan, []models.ScoredEntry) {
	t.Helper()
	engine := services.NewEngine(catalog.Default(), nil)
	plan, err := engine.Recompute(in)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	return &plan, engine.ScoreCatalog(plan)
}

func TestResultsView_NilPlan(t *testing.T) {
	r := New(nil, nil, 120)
	if !strings.Contains(r.View(), "Computing plan") {
		t.Error("expected placeholder before the first plan")
	}
}

func TestResultsView_DefaultPlan(t *testing.T) {
	plan, scores := computePlan(t, models.DefaultInputs())
	view := New(plan, scores, 160).View()

	expected := []string{
		"Sizing Plan",
		"Standalone (QueueExecutor)",
		"4 cores, 8 GB memory, 100 GB storage",
		"Workers",
		"Schedulers",
		"DB pool",
		"Peak tasks",
		"125.0%",
		"Recommended",
		"2.8.0",
		"Selected 2.8.0 is optimal",
		"(2.6.0 to 3.0.0)",
		"Advisories (3 warning(s))",
		"Configuration",
		"WORKERS = 8",
	}
	for _, want := range expected {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}
}

func TestResultsView_ToggleConfig(t *testing.T) {
	plan, scores := computePlan(t, models.DefaultInputs())
	r := New(plan, scores, 160)

	if !r.ShowConfig() {
		t.Fatal("expected config to be shown by default")
	}
	r.ToggleConfig()
	if r.ShowConfig() {
		t.Fatal("expected config hidden after toggle")
	}
	if strings.Contains(r.View(), "WORKERS = 8") {
		t.Error("expected config block to be hidden")
	}
}

func TestResultsView_UnknownVersion(t *testing.T) {
	in := models.DefaultInputs()
	in.SelectedVersion = "2.8.1"
	plan, scores := computePlan(t, in)

	view := New(plan, scores, 160).View()
	if !strings.Contains(view, "Selected 2.8.1 is not in the catalog") {
		t.Errorf("expected unknown version notice\nView:\n%s", view)
	}
	if !strings.Contains(view, "Did you mean") || !strings.Contains(view, "2.8.0") {
		t.Errorf("expected suggestions\nView:\n%s", view)
	}
}

func TestResultsView_NoAdvisories(t *testing.T) {
	in := models.DefaultInputs()
	in.Hardware.CPUCores = 32
	in.Hardware.MemoryGB = 64
	plan, scores := computePlan(t, in)

	view := New(plan, scores, 160).View()
	if !strings.Contains(view, "No advisories") {
		t.Errorf("expected no advisories\nView:\n%s", view)
	}
}

func TestResultsUpdate(t *testing.T) {
	r := New(nil, nil, 160)
	plan, scores := computePlan(t, models.DefaultInputs())

	r.Update(plan, scores)
	if strings.Contains(r.View(), "Computing plan") {
		t.Error("expected plan to replace the placeholder")
	}
}

func TestArrange(t *testing.T) {
	block := strings.Repeat("x", 22) + "\n" + strings.Repeat("x", 22)
	blocks := []string{block, block, block, block}

	if h := lipgloss.Height(arrange(blocks, 50, 22)); h != 4 {
		t.Errorf("expected two rows of two blocks (height 4), got %d", h)
	}
	if h := lipgloss.Height(arrange(blocks, 200, 22)); h != 2 {
		t.Errorf("expected a single row (height 2), got %d", h)
	}
	if h := lipgloss.Height(arrange(blocks, 10, 22)); h != 8 {
		t.Errorf("expected one block per row (height 8), got %d", h)
	}
}
