// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, recomputes plans, and routes keyboard input to child components

package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
	"github.com/markalston/workflow-sizer/cli/internal/profile"
	"github.com/markalston/workflow-sizer/cli/internal/tui/comparison"
	"github.com/markalston/workflow-sizer/cli/internal/tui/debuglog"
	"github.com/markalston/workflow-sizer/cli/internal/tui/filepicker"
	"github.com/markalston/workflow-sizer/cli/internal/tui/icons"
	"github.com/markalston/workflow-sizer/cli/internal/tui/recentfiles"
	"github.com/markalston/workflow-sizer/cli/internal/tui/results"
	"github.com/markalston/workflow-sizer/cli/internal/tui/samples"
	"github.com/markalston/workflow-sizer/cli/internal/tui/styles"
	"github.com/markalston/workflow-sizer/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenResults Screen = iota
	ScreenWizard
	ScreenOpen
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
	sidePaneWidth    = 48
)

// DefaultProfilePath is where "s" saves the current inputs
const DefaultProfilePath = "workflow-profile.yaml"

// planComputedMsg is sent when a recompute finishes
type planComputedMsg struct {
	plan   models.Plan
	scores []models.ScoredEntry
	err    error
}

// profileSavedMsg is sent after the inputs are written to disk
type profileSavedMsg struct {
	path string
	err  error
}

// App is the root model for the TUI
type App struct {
	engine      *services.Engine
	screen      Screen
	width       int
	height      int
	err         error
	status      string
	inputs      models.Inputs
	plan        *models.Plan
	previous    *models.Plan
	lastUpdate  time.Time
	profilePath string

	// Profile picker sources
	recentFiles  *recentfiles.RecentFiles
	repoBasePath string

	// Child models
	results      *results.Results
	compView     *comparison.Comparison
	viewport     viewport.Model
	wizardScreen *wizard.Wizard
	filePicker   *filepicker.FilePicker
}

// New creates a new TUI application starting from in
func New(engine *services.Engine, in models.Inputs) *App {
	basePath, _ := os.Getwd()
	return &App{
		engine:       engine,
		screen:       ScreenResults,
		inputs:       in,
		profilePath:  DefaultProfilePath,
		recentFiles:  recentfiles.New(recentfiles.DefaultConfigDir()),
		repoBasePath: basePath,
		results:      results.New(nil, nil, minTerminalWidth),
		compView:     comparison.New(nil, nil, sidePaneWidth),
		viewport:     viewport.New(minTerminalWidth, 20),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.recompute(a.inputs)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		if a.filePicker != nil {
			a.filePicker.Update(tea.WindowSizeMsg{Width: a.frameWidth(), Height: a.height})
		}
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.frameWidth())
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenResults:
			return a.updateResults(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenOpen:
			return a.updateFilePicker(msg)
		}

	case wizard.WizardCompleteMsg:
		a.wizardScreen = nil
		a.screen = ScreenResults
		return a, a.recompute(msg.Inputs)

	case wizard.WizardCancelledMsg:
		a.wizardScreen = nil
		if a.plan == nil {
			return a, tea.Quit
		}
		a.screen = ScreenResults
		return a, nil

	case filepicker.FileSelectedMsg:
		return a.handleFileSelected(msg)

	case filepicker.CancelledMsg:
		a.filePicker = nil
		a.screen = ScreenResults
		return a, nil

	case planComputedMsg:
		return a.handlePlanComputed(msg)

	case profileSavedMsg:
		if msg.err != nil {
			a.status = "Save failed: " + msg.err.Error()
			debuglog.Logger().Error("saving profile", "path", msg.path, "error", msg.err)
		} else {
			a.status = "Saved " + msg.path
			if err := a.recentFiles.Add(msg.path); err != nil {
				debuglog.Logger().Warn("recording recent profile", "path", msg.path, "error", err)
			}
		}
		return a, nil

	default:
		// huh forms depend on their own internal messages
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
		if a.screen == ScreenOpen {
			return a.updateFilePicker(msg)
		}
	}

	return a, nil
}

func (a *App) handlePlanComputed(msg planComputedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.err = msg.err
		debuglog.Logger().Warn("recompute failed", "error", msg.err)
		return a, nil
	}

	plan := msg.plan
	a.err = nil
	a.status = ""
	a.previous = a.plan
	a.plan = &plan
	a.inputs = plan.Inputs
	a.lastUpdate = time.Now()
	a.results.Update(a.plan, msg.scores)
	a.compView = comparison.New(a.previous, a.plan, a.sideWidth()-2)
	a.refreshViewport()
	a.viewport.GotoTop()

	debuglog.Logger().Info("plan computed",
		"workers", plan.Sizing.WorkerCount,
		"schedulers", plan.Sizing.SchedulerCount,
		"recommended", plan.Versions.Recommended.Version,
		"warnings", plan.WarningCount())
	return a, nil
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "e":
		return a, a.runWizard()
	case "c":
		a.results.ToggleConfig()
		a.refreshViewport()
		return a, nil
	case "s":
		return a, a.saveProfile()
	case "o":
		a.openFilePicker()
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateFilePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.filePicker == nil {
		return a, nil
	}
	model, cmd := a.filePicker.Update(msg)
	a.filePicker = model.(*filepicker.FilePicker)
	return a, cmd
}

// openFilePicker transitions to the profile picker
func (a *App) openFilePicker() {
	sampleFiles, err := samples.Discover(samples.FindSamplesDir(a.repoBasePath))
	if err != nil {
		debuglog.Logger().Warn("discovering example profiles", "error", err)
	}
	a.filePicker = filepicker.New(a.recentFiles.List(), sampleFiles)
	a.filePicker.Update(tea.WindowSizeMsg{Width: a.frameWidth(), Height: a.height})
	a.screen = ScreenOpen
	a.status = ""
}

// handleFileSelected parses a picked profile and recomputes from it. Invalid
// profiles keep the picker open with the validation error.
func (a *App) handleFileSelected(msg filepicker.FileSelectedMsg) (tea.Model, tea.Cmd) {
	in, err := profile.Parse(msg.Data)
	if err != nil {
		debuglog.Logger().Warn("invalid profile", "path", msg.Path, "error", err)
		if a.filePicker != nil {
			a.filePicker.SetError("Invalid profile: " + err.Error())
		}
		return a, nil
	}

	if err := a.recentFiles.Add(msg.Path); err != nil {
		debuglog.Logger().Warn("recording recent profile", "path", msg.Path, "error", err)
	}
	a.filePicker = nil
	a.screen = ScreenResults
	a.profilePath = msg.Path
	return a, a.recompute(in)
}

// recompute validates in and runs the engine off the update loop
func (a *App) recompute(in models.Inputs) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		in = services.NormalizeInputs(in)
		if err := services.ValidateInputs(in); err != nil {
			return planComputedMsg{err: err}
		}
		plan, err := engine.Recompute(in)
		if err != nil {
			return planComputedMsg{err: err}
		}
		return planComputedMsg{plan: plan, scores: engine.ScoreCatalog(plan)}
	}
}

// saveProfile writes the current inputs as a YAML profile
func (a *App) saveProfile() tea.Cmd {
	path := a.profilePath
	in := a.inputs
	return func() tea.Msg {
		data, err := profile.Marshal(in)
		if err != nil {
			return profileSavedMsg{path: path, err: err}
		}
		return profileSavedMsg{path: path, err: os.WriteFile(path, data, 0644)}
	}
}

// runWizard transitions to the wizard screen
func (a *App) runWizard() tea.Cmd {
	a.wizardScreen = wizard.New(a.inputs, a.engine.Catalog())
	a.wizardScreen.SetWidth(a.frameWidth())
	a.screen = ScreenWizard
	a.status = ""
	return a.wizardScreen.Init()
}

// resize propagates the terminal size to the panes
func (a *App) resize() {
	a.results.SetWidth(a.resultsWidth() - panelPadding)
	a.viewport.Width = a.resultsWidth() - panelPadding
	a.viewport.Height = max(1, a.contentHeight())
	if a.plan != nil {
		a.compView = comparison.New(a.previous, a.plan, a.sideWidth()-2)
	}
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	a.viewport.SetContent(a.results.View())
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenWizard:
		content = a.viewWizard()
	case ScreenOpen:
		if a.filePicker != nil {
			content = a.filePicker.View()
		}
	default:
		content = a.viewResults()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

// viewResults renders the plan with the comparison and actions pane
func (a *App) viewResults() string {
	if a.err != nil && a.plan == nil {
		return styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n" +
			styles.Subtitle.Render("Press e to edit the inputs or q to quit")
	}

	var errLine string
	if a.err != nil {
		errLine = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n"
	}

	leftPane := styles.ActivePanel.Width(a.resultsWidth()).Render(a.viewport.View())

	side := a.compView.View() + "\n\n" +
		styles.Title.Render(icons.Config.String()+" Actions") + "\n" +
		icons.Edit.String() + " Edit inputs\n" +
		icons.Release.String() + " Open profile\n" +
		icons.Config.String() + " Toggle configuration\n" +
		icons.Release.String() + " Save profile to " + a.profilePath + "\n" +
		icons.Quit.String() + " Quit application\n"
	rightPane := styles.Panel.Width(a.sideWidth()).Render(side)

	if a.width < minTerminalWidth+sidePaneWidth {
		return errLine + lipgloss.JoinVertical(lipgloss.Left, leftPane, rightPane)
	}
	return errLine + lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// frameWidth is the header/footer width, clamped for usability
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// resultsWidth calculates the width for the results pane
func (a *App) resultsWidth() int {
	if a.width < minTerminalWidth+sidePaneWidth {
		return max(a.width, minTerminalWidth) - panelPadding
	}
	return a.width - sidePaneWidth - panelPadding
}

// sideWidth calculates the width for the comparison and actions pane
func (a *App) sideWidth() int {
	if a.width < minTerminalWidth+sidePaneWidth {
		return a.resultsWidth()
	}
	return sidePaneWidth - panelPadding
}

// contentHeight calculates the height available for the results viewport
func (a *App) contentHeight() int {
	// Header, newline, panel border and padding (4), newline, footer
	return a.height - 8
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Workflow Sizer"))

	rightText := ""
	if a.plan != nil {
		rightText = " " + contextStyle.Render(fmt.Sprintf("%s | %s", a.inputs.Mode.DisplayName(), a.inputs.SelectedVersion)) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if fillWidth < 0 {
		rightText = ""
		fillWidth = max(0, width-4-lipgloss.Width(leftText))
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenResults:
		shortcuts = []string{"e Edit", "o Open", "s Save", "c Config", "↑↓ Scroll", "q Quit"}
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenOpen:
		shortcuts = []string{"↑↓ Select", "Enter Open", "Esc Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}

	leftText := " " + strings.Join(styledShortcuts, "  ") + " "
	leftPlainText := " " + strings.Join(shortcuts, "  ") + " "

	rightPlainText := ""
	switch {
	case a.screen != ScreenResults:
	case a.status != "":
		rightPlainText = " " + a.status + " "
	case !a.lastUpdate.IsZero():
		rightPlainText = " Updated " + formatTimeSince(a.lastUpdate) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		rightPlainText = ""
		fillWidth = max(0, width-4-lipgloss.Width(leftPlainText))
	}

	rightText := ""
	if rightPlainText != "" {
		rightText = statusStyle.Render(rightPlainText)
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI. Logs go to the user config directory so they never
// draw over the alt screen.
func Run(engine *services.Engine, in models.Inputs) error {
	if err := debuglog.Init(recentfiles.DefaultConfigDir(), os.Getenv("LOG_LEVEL")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: TUI log disabled: %v\n", err)
	}
	defer debuglog.Close()

	p := tea.NewProgram(
		New(engine, in),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
