// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Maps sizing metrics and advisory categories to terminal glyphs

package icons

import (
	"os"
	"strings"
	"sync"

	"github.com/markalston/workflow-sizer/backend/models"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals commonly ship with a patched font
var nerdFontTerminals = []string{
	"iTerm.app",
	"alacritty",
	"WezTerm",
	"kitty",
	"ghostty",
}

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv("WORKFLOW_SIZER_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Hardware
	CPU     = Icon{"", "●"} // nf-oct-cpu
	Memory  = Icon{"󰍛", "◆"} // nf-md-memory
	Storage = Icon{"󰋊", "■"} // nf-md-harddisk

	// Sizing
	Workers    = Icon{"󰒋", "▣"} // nf-md-server
	Scheduler  = Icon{"󰃰", "◷"} // nf-md-calendar_clock
	Database   = Icon{"󰆼", "▤"} // nf-md-database
	Tasks      = Icon{"󰄬", "≡"} // nf-md-format_list_checks
	Release    = Icon{"󰏗", "◈"} // nf-md-package_variant
	Queue      = Icon{"󰁅", "⇣"} // nf-md-arrow_collapse_down
	Scale      = Icon{"󱃾", "⬡"} // nf-md-hexagon_multiple
	ScoreTrend = Icon{"󰄭", "▁"} // nf-md-chart_line

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Edit   = Icon{"󰏫", "✎"} // nf-md-pencil
	Config = Icon{"󰒓", "⚙"} // nf-md-cog
	Quit   = Icon{"󰗼", "×"} // nf-md-exit_to_app

	App = Icon{"󱁤", "◈"} // nf-md-tools
)

// ForCategory returns the icon shown next to an advisory
func ForCategory(c models.AdvisoryCategory) Icon {
	switch c {
	case models.CategoryCPU:
		return CPU
	case models.CategoryMemory:
		return Memory
	case models.CategoryWorkers:
		return Workers
	case models.CategoryScalability:
		return Scale
	case models.CategoryQueueing:
		return Queue
	default:
		return Info
	}
}
