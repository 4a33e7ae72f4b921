// ABOUTME: Sizing inputs wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/cli/internal/tui/icons"
	"github.com/markalston/workflow-sizer/cli/internal/tui/styles"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Inputs models.Inputs
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects sizing inputs over three steps
type Wizard struct {
	catalog *models.Catalog
	inputs  models.Inputs
	form    *huh.Form
	step    int
	width   int

	// Form field values (strings for huh)
	version    string
	mode       string
	cpu        string
	memory     string
	storage    string
	units      string
	subtasks   string
	concurrent string
}

// Step names for progress indicator
var stepNames = []string{"Release", "Hardware", "Workload"}

// createTheme returns the huh theme used by every step
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	purple := lipgloss.Color("#7C3AED")
	purpleLight := lipgloss.Color("#A78BFA")
	blue := lipgloss.Color("#3B82F6")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(purple)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(purpleLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(purple).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(purple).
		MarginLeft(1).
		SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(purple).
		MarginRight(1).
		SetString("←")

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(purple)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(purple)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a wizard prefilled from in. An empty mode starts on standalone.
func New(in models.Inputs, catalog *models.Catalog) *Wizard {
	if in.Mode == "" {
		in.Mode = models.ModeStandalone
	}

	w := &Wizard{
		catalog:    catalog,
		inputs:     in,
		step:       1,
		version:    in.SelectedVersion,
		mode:       string(in.Mode),
		cpu:        strconv.Itoa(in.Hardware.CPUCores),
		memory:     strconv.Itoa(in.Hardware.MemoryGB),
		storage:    strconv.Itoa(in.Hardware.StorageGB),
		units:      strconv.Itoa(in.Workload.ExpectedUnits),
		subtasks:   strconv.Itoa(in.Workload.AvgSubtasksPerUnit),
		concurrent: strconv.Itoa(in.Workload.ConcurrentUnits),
	}

	w.form = w.createReleaseForm()
	return w
}

// versionOptions lists the catalog in order. A selected version missing from
// the catalog stays selectable so the results can suggest close matches.
func (w *Wizard) versionOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	found := false
	if w.catalog != nil {
		for _, e := range w.catalog.Entries() {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", e.Version, e.Status), e.Version))
			if e.Version == w.version {
				found = true
			}
		}
	}
	if !found && w.version != "" {
		opts = append(opts, huh.NewOption(w.version+" (not in catalog)", w.version))
	}
	return opts
}

func modeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(models.DeploymentModes))
	for i, m := range models.DeploymentModes {
		opts[i] = huh.NewOption(m.DisplayName(), string(m))
	}
	return opts
}

func (w *Wizard) createReleaseForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Release").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(w.versionOptions()...).
				Value(&w.version),
			huh.NewSelect[string]().
				Title("Deployment mode").
				Description("Orchestrated runs more than one scheduler").
				Options(modeOptions()...).
				Value(&w.mode),
		).Title("Step 1: Release").
			Description("Pick the release you plan to run and how it is deployed"),
	).WithTheme(createTheme())
}

func positiveInput(title, description string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		CharLimit(6).
		Value(value).
		Validate(validatePositiveInt)
}

func (w *Wizard) createHardwareForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			positiveInput("CPU cores", "Cores available to the deployment", &w.cpu),
			positiveInput("Memory (GB)", "Memory available to the deployment", &w.memory),
			positiveInput("Storage (GB)", "Disk for logs and metadata", &w.storage),
		).Title("Step 2: Hardware").
			Description("Describe the host or node pool"),
	).WithTheme(createTheme())
}

func (w *Wizard) createWorkloadForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			positiveInput("Workflows", "Workflow definitions you expect to deploy", &w.units),
			positiveInput("Tasks per workflow", "Average subtasks in each workflow", &w.subtasks),
			positiveInput("Concurrent workflows", "Workflows running at the same time", &w.concurrent),
		).Title("Step 3: Workload").
			Description("Size the workload the deployment has to absorb"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.inputs.SelectedVersion = w.version
		w.inputs.Mode = models.DeploymentMode(w.mode)
		w.step = 2
		w.form = w.createHardwareForm()
		return w, w.form.Init()

	case 2:
		w.inputs.Hardware = models.HardwareProfile{
			CPUCores:  atoi(w.cpu),
			MemoryGB:  atoi(w.memory),
			StorageGB: atoi(w.storage),
		}
		w.step = 3
		w.form = w.createWorkloadForm()
		return w, w.form.Init()

	case 3:
		w.inputs.Workload = models.WorkloadProfile{
			ExpectedUnits:      atoi(w.units),
			AvgSubtasksPerUnit: atoi(w.subtasks),
			ConcurrentUnits:    atoi(w.concurrent),
		}
		inputs := w.inputs
		return w, func() tea.Msg {
			return WizardCompleteMsg{Inputs: inputs}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Step returns the current step (1-based)
func (w *Wizard) Step() int {
	return w.step
}

// Inputs returns the values collected so far
func (w *Wizard) Inputs() models.Inputs {
	return w.inputs
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	progressBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	title := "Progress"
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐"
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	progressLinePadded := "│  " + progressBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func atoi(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive whole number")
	}
	return nil
}
