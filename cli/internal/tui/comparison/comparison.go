// ABOUTME: Comparison view showing the previous plan against the current one
// ABOUTME: Displays input changes and sizing deltas after each wizard run

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/cli/internal/tui/styles"
	"github.com/markalston/workflow-sizer/cli/internal/tui/widgets"
)

// Comparison displays the deltas between two plans
type Comparison struct {
	previous *models.Plan
	current  *models.Plan
	width    int
}

// New creates a comparison view. previous may be nil.
func New(previous, current *models.Plan, width int) *Comparison {
	return &Comparison{
		previous: previous,
		current:  current,
		width:    width,
	}
}

// delta is one row of the changes table
type delta struct {
	label  string
	before string
	after  string
	diff   float64
	unit   string
	invert bool // an increase is shown as a warning
}

// View renders the comparison
func (c *Comparison) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Changes"))
	sb.WriteString("\n")

	if c.current == nil {
		sb.WriteString(styles.Subtitle.Render("No plan yet"))
		return lipgloss.NewStyle().Width(c.width).Render(sb.String())
	}
	if c.previous == nil {
		sb.WriteString(styles.Subtitle.Render("First plan. Press e to edit the inputs and compare."))
		return lipgloss.NewStyle().Width(c.width).Render(sb.String())
	}

	if changes := InputChanges(c.previous.Inputs, c.current.Inputs); len(changes) > 0 {
		sb.WriteString(styles.Subtitle.Render("Inputs"))
		sb.WriteString("\n")
		for _, ch := range changes {
			sb.WriteString("  " + ch + "\n")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(styles.Subtitle.Render("Inputs unchanged"))
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.Subtitle.Render("Plan"))
	sb.WriteString("\n")
	for _, d := range c.deltas() {
		sb.WriteString(fmt.Sprintf("  %-10s %6s -> %-6s %s\n", d.label, d.before, d.after, widgets.DeltaBadge(d.diff, d.unit, d.invert)))
	}

	prevRec := c.previous.Versions.Recommended.Version
	currRec := c.current.Versions.Recommended.Version
	if prevRec != currRec {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText(fmt.Sprintf("Recommended release changed: %s -> %s", prevRec, currRec), widgets.StatusInfo))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(c.width).Render(sb.String())
}

func (c *Comparison) deltas() []delta {
	p, n := c.previous.Sizing, c.current.Sizing

	count := func(label string, before, after int, invert bool) delta {
		return delta{
			label:  label,
			before: fmt.Sprintf("%d", before),
			after:  fmt.Sprintf("%d", after),
			diff:   float64(after - before),
			invert: invert,
		}
	}
	pct := func(label string, before, after float64) delta {
		return delta{
			label:  label,
			before: fmt.Sprintf("%.1f%%", before),
			after:  fmt.Sprintf("%.1f%%", after),
			diff:   round1(after - before),
			unit:   "%",
			invert: true,
		}
	}

	return []delta{
		count("Workers", p.WorkerCount, n.WorkerCount, false),
		count("Schedulers", p.SchedulerCount, n.SchedulerCount, false),
		count("DB pool", p.DBConnectionPoolSize, n.DBConnectionPoolSize, false),
		count("Peak tasks", p.PeakConcurrentTasks, n.PeakConcurrentTasks, true),
		pct("CPU", p.CPUUtilizationPct, n.CPUUtilizationPct),
		pct("Memory", p.MemoryUtilizationPct, n.MemoryUtilizationPct),
		count("Warnings", c.previous.WarningCount(), c.current.WarningCount(), true),
	}
}

// InputChanges lists the inputs that differ between two plans
func InputChanges(before, after models.Inputs) []string {
	var out []string
	intField := func(label string, a, b int) {
		if a != b {
			out = append(out, fmt.Sprintf("%s: %d -> %d", label, a, b))
		}
	}
	strField := func(label, a, b string) {
		if a != b {
			out = append(out, fmt.Sprintf("%s: %s -> %s", label, a, b))
		}
	}

	intField("CPU cores", before.Hardware.CPUCores, after.Hardware.CPUCores)
	intField("Memory GB", before.Hardware.MemoryGB, after.Hardware.MemoryGB)
	intField("Storage GB", before.Hardware.StorageGB, after.Hardware.StorageGB)
	intField("Workflows", before.Workload.ExpectedUnits, after.Workload.ExpectedUnits)
	intField("Tasks/workflow", before.Workload.AvgSubtasksPerUnit, after.Workload.AvgSubtasksPerUnit)
	intField("Concurrent", before.Workload.ConcurrentUnits, after.Workload.ConcurrentUnits)
	strField("Mode", string(before.Mode), string(after.Mode))
	strField("Release", before.SelectedVersion, after.SelectedVersion)
	return out
}

func round1(x float64) float64 {
	if x < 0 {
		return -float64(int64(-x*10+0.5)) / 10
	}
	return float64(int64(x*10+0.5)) / 10
}
