// ABOUTME: Profile picker TUI component for opening saved sizing profiles
// ABOUTME: Shows recent profiles, a path input, and example profiles

package filepicker

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/cli/internal/tui/samples"
	"github.com/markalston/workflow-sizer/cli/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
	stateSamples
)

// FileSelectedMsg is sent when a profile has been read from disk
type FileSelectedMsg struct {
	Path string
	Data []byte
}

// CancelledMsg is sent when the user backs out of the picker
type CancelledMsg struct{}

// FilePicker is the profile selection component
type FilePicker struct {
	recentFiles []string
	samples     []samples.SampleFile
	cursor      int
	state       state
	textInput   textinput.Model
	err         string
	width       int
	height      int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	errorStyle    = lipgloss.NewStyle().Foreground(styles.Danger)
	helpStyle     = lipgloss.NewStyle().Foreground(styles.Muted)
	dividerStyle  = lipgloss.NewStyle().Foreground(styles.Surface)
)

// New creates a picker over recent profiles and example profiles
func New(recentFiles []string, sampleFiles []samples.SampleFile) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "/path/to/profile.yaml"
	ti.CharLimit = 256
	ti.Width = 60

	return &FilePicker{
		recentFiles: recentFiles,
		samples:     sampleFiles,
		state:       stateList,
		textInput:   ti,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		fp.height = msg.Height
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""

		switch fp.state {
		case stateList:
			return fp.updateList(msg)
		case stateInput:
			return fp.updateInput(msg)
		case stateSamples:
			return fp.updateSamples(msg)
		}
	}

	return fp, nil
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < fp.listItemCount()-1 {
			fp.cursor++
		}
	case "enter":
		return fp.selectListItem()
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}

	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		fp.textInput.Blur()
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a profile path"
			return fp, nil
		}
		return fp.loadFile(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) updateSamples(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxItems := len(fp.samples) + 1 // [back]

	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < maxItems-1 {
			fp.cursor++
		}
	case "enter":
		if fp.cursor == len(fp.samples) {
			fp.state = stateList
			fp.cursor = 0
			return fp, nil
		}
		return fp.loadFile(fp.samples[fp.cursor].Path)
	case "esc", "b":
		fp.state = stateList
		fp.cursor = 0
		return fp, nil
	}

	return fp, nil
}

func (fp *FilePicker) hasSamples() bool {
	return len(fp.samples) > 0
}

func (fp *FilePicker) listItemCount() int {
	count := len(fp.recentFiles) + 1 // Enter path...
	if fp.hasSamples() {
		count++
	}
	return count
}

func (fp *FilePicker) selectListItem() (tea.Model, tea.Cmd) {
	recentCount := len(fp.recentFiles)

	switch {
	case fp.cursor < recentCount:
		return fp.loadFile(fp.recentFiles[fp.cursor])

	case fp.cursor == recentCount:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink

	case fp.hasSamples() && fp.cursor == recentCount+1:
		fp.state = stateSamples
		fp.cursor = 0
	}

	return fp, nil
}

func (fp *FilePicker) loadFile(path string) (tea.Model, tea.Cmd) {
	expandedPath := expandPath(path)

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			fp.err = "Profile not found: " + path
		case os.IsPermission(err):
			fp.err = "Cannot read profile: permission denied"
		default:
			fp.err = "Error reading profile: " + err.Error()
		}
		return fp, nil
	}

	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expandedPath, Data: data}
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// SetError sets an error message to display, e.g. a profile that fails validation
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

// Err returns the error currently displayed
func (fp *FilePicker) Err() string {
	return fp.err
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	switch fp.state {
	case stateInput:
		return fp.viewInput()
	case stateSamples:
		return fp.viewSamples()
	default:
		return fp.viewList()
	}
}

func (fp *FilePicker) item(index int, label string) string {
	if index == fp.cursor {
		return "> " + selectedStyle.Render(label) + "\n"
	}
	return "  " + normalStyle.Render(label) + "\n"
}

func (fp *FilePicker) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Open profile"))
	b.WriteString("\n\n")

	if len(fp.recentFiles) > 0 {
		b.WriteString(helpStyle.Render("Recent profiles:"))
		b.WriteString("\n")
		for i, path := range fp.recentFiles {
			display := path
			if fp.width > 20 && len(display) > fp.width-10 {
				display = "..." + display[len(display)-(fp.width-13):]
			}
			b.WriteString(fp.item(i, display))
		}
		b.WriteString("\n")

		dividerWidth := min(40, fp.width-4)
		if dividerWidth < 1 {
			dividerWidth = 40
		}
		b.WriteString(dividerStyle.Render(strings.Repeat("─", dividerWidth)))
		b.WriteString("\n")
	}

	idx := len(fp.recentFiles)
	b.WriteString(fp.item(idx, "Enter path..."))

	if fp.hasSamples() {
		b.WriteString(fp.item(idx+1, "Load example profile..."))
	}

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}

	return b.String()
}

func (fp *FilePicker) viewInput() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Enter profile path"))
	b.WriteString("\n\n")
	b.WriteString(fp.textInput.View())

	if fp.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}

	return b.String()
}

func (fp *FilePicker) viewSamples() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select example profile"))
	b.WriteString("\n\n")

	for i, sample := range fp.samples {
		b.WriteString(fp.item(i, sample.Name))
	}
	b.WriteString(fp.item(len(fp.samples), "[back]"))

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}

	return b.String()
}
