// ABOUTME: Results pane rendering a computed sizing plan
// ABOUTME: Shows counts, utilization, release recommendation, advisories, and config

package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/cli/internal/tui/icons"
	"github.com/markalston/workflow-sizer/cli/internal/tui/styles"
	"github.com/markalston/workflow-sizer/cli/internal/tui/widgets"
)

const (
	countBlockWidth   = 22
	usageBlockWidth   = 28
	releaseBlockWidth = 34
)

// Results displays one plan
type Results struct {
	plan       *models.Plan
	scores     []models.ScoredEntry
	width      int
	showConfig bool
}

// New creates a results pane. scores is the whole catalog scored in order.
func New(plan *models.Plan, scores []models.ScoredEntry, width int) *Results {
	return &Results{
		plan:       plan,
		scores:     scores,
		width:      width,
		showConfig: true,
	}
}

// Update replaces the displayed plan
func (r *Results) Update(plan *models.Plan, scores []models.ScoredEntry) {
	r.plan = plan
	r.scores = scores
}

// SetWidth updates the pane width
func (r *Results) SetWidth(width int) {
	r.width = width
}

// ToggleConfig shows or hides the exported configuration
func (r *Results) ToggleConfig() {
	r.showConfig = !r.showConfig
}

// ShowConfig reports whether the configuration block is visible
func (r *Results) ShowConfig() bool {
	return r.showConfig
}

// View renders the results
func (r *Results) View() string {
	if r.plan == nil {
		return styles.Panel.Render("Computing plan...")
	}

	p := r.plan
	in := p.Inputs

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Sizing Plan"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s (%s)", in.Mode.DisplayName(), in.Mode.ExecutorName())))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d cores, %d GB memory, %d GB storage | %d workflows x %d tasks, %d concurrent",
		in.Hardware.CPUCores, in.Hardware.MemoryGB, in.Hardware.StorageGB,
		in.Workload.ExpectedUnits, in.Workload.AvgSubtasksPerUnit, in.Workload.ConcurrentUnits)))
	sb.WriteString("\n\n")

	sb.WriteString(r.renderCounts())
	sb.WriteString("\n")
	sb.WriteString(r.renderUtilization())
	sb.WriteString("\n\n")
	sb.WriteString(r.renderRelease())
	sb.WriteString("\n")
	sb.WriteString(r.renderAdvisories())

	if r.showConfig && p.Config != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(icons.Config.String() + " Configuration"))
		sb.WriteString("\n")
		sb.WriteString(styles.CodeBlock.Render(p.Config))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(r.width).Render(sb.String())
}

func (r *Results) renderCounts() string {
	s := r.plan.Sizing
	cfg := widgets.DefaultMetricBlockConfig()
	cfg.Width = countBlockWidth

	blocks := []string{
		widgets.CountBlock(icons.Workers, "Workers", s.WorkerCount, "task executors", cfg),
		widgets.CountBlock(icons.Scheduler, "Schedulers", s.SchedulerCount, "scheduler processes", cfg),
		widgets.CountBlock(icons.Database, "DB pool", s.DBConnectionPoolSize, "connections", cfg),
		widgets.CountBlock(icons.Tasks, "Peak tasks", s.PeakConcurrentTasks, "concurrent at peak", cfg),
	}
	return arrange(blocks, r.width, countBlockWidth)
}

func (r *Results) renderUtilization() string {
	s := r.plan.Sizing
	hw := r.plan.Inputs.Hardware
	cfg := widgets.DefaultMetricBlockConfig()
	cfg.Width = usageBlockWidth

	blocks := []string{
		widgets.MetricBlockWithBar(icons.CPU, "CPU", s.CPUUtilizationPct,
			fmt.Sprintf("of %d cores", hw.CPUCores), widgets.DefaultProgressBarConfig(), cfg),
		widgets.MetricBlockWithBar(icons.Memory, "Memory", s.MemoryUtilizationPct,
			fmt.Sprintf("of %d GB", hw.MemoryGB), widgets.MemoryProgressBarConfig(), cfg),
	}
	return arrange(blocks, r.width, usageBlockWidth)
}

func (r *Results) renderRelease() string {
	v := r.plan.Versions
	rec := v.Recommended

	cfg := widgets.DefaultMetricBlockConfig()
	cfg.Width = releaseBlockWidth
	cfg.BorderColor = styles.Primary

	var sb strings.Builder
	sb.WriteString(widgets.MetricBlockWithSparkline(icons.Release, "Recommended", rec.Version,
		scoreValues(r.scores), fmt.Sprintf("score %d, runtime %s+", rec.Score, rec.MinRuntime), cfg))
	sb.WriteString("\n")
	sb.WriteString(widgets.LifecycleBadge(rec.Status))
	sb.WriteString("\n")

	switch {
	case v.SelectedIsOptimal:
		sb.WriteString(widgets.StatusText(fmt.Sprintf("Selected %s is optimal", v.SelectedVersion), widgets.StatusOK))
	case v.CurrentFound:
		sb.WriteString(widgets.StatusText(fmt.Sprintf("Selected %s: consider upgrading to %s", v.SelectedVersion, rec.Version), widgets.StatusWarning))
	default:
		sb.WriteString(widgets.StatusText(fmt.Sprintf("Selected %s is not in the catalog", v.SelectedVersion), widgets.StatusCritical))
		if len(v.Suggestions) > 0 {
			sb.WriteString("\n  Did you mean " + strings.Join(v.Suggestions, ", ") + "?")
		}
	}
	sb.WriteString("\n")

	if len(v.Alternatives) > 0 {
		alts := make([]string, len(v.Alternatives))
		for i, a := range v.Alternatives {
			alts[i] = fmt.Sprintf("%s (%d)", a.Version, a.Score)
		}
		sb.WriteString(styles.Subtitle.Render("Alternatives: "))
		sb.WriteString(strings.Join(alts, ", "))
		sb.WriteString("\n")
	}

	if profile := r.renderScoreProfile(); profile != "" {
		sb.WriteString(profile)
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderScoreProfile plots every release's score in catalog order with the
// recommended release highlighted
func (r *Results) renderScoreProfile() string {
	if len(r.scores) < 2 {
		return ""
	}

	index := -1
	for i, s := range r.scores {
		if s.Version == r.plan.Versions.Recommended.Version {
			index = i
			break
		}
	}

	first := r.scores[0].Version
	last := r.scores[len(r.scores)-1].Version
	line := widgets.SparklineHighlight(scoreValues(r.scores), index, styles.Muted, styles.Secondary)

	return fmt.Sprintf("%s %s %s",
		styles.Subtitle.Render(icons.ScoreTrend.String()+" Scores"),
		line,
		styles.Subtitle.Render(fmt.Sprintf("(%s to %s)", first, last)))
}

func (r *Results) renderAdvisories() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Advisories (%d warning(s))", r.plan.WarningCount())))
	sb.WriteString("\n")

	if len(r.plan.Advisories) == 0 {
		sb.WriteString(widgets.StatusText("No advisories", widgets.StatusOK))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, a := range r.plan.Advisories {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			icons.ForCategory(a.Category).String(),
			widgets.StatusText(a.Message, widgets.SeverityLevel(a.Severity))))
	}
	return sb.String()
}

func scoreValues(scores []models.ScoredEntry) []float64 {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s.Score)
	}
	return values
}

// arrange lays blocks out in as many columns as fit in width
func arrange(blocks []string, width, blockWidth int) string {
	perRow := max(1, width/(blockWidth+1))

	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, withGaps(blocks[i:end])...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func withGaps(blocks []string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}
