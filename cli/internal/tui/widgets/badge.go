// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Lifecycle, severity, and delta badges for the sizing results

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func levelColors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := levelColors(level)

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// LifecycleLevel maps a catalog lifecycle status to a badge level
func LifecycleLevel(status models.LifecycleStatus) StatusLevel {
	switch status {
	case models.StatusRecommended:
		return StatusOK
	case models.StatusLatest:
		return StatusInfo
	case models.StatusBeta:
		return StatusWarning
	default:
		return StatusNeutral
	}
}

// LifecycleBadge renders a release's lifecycle status
func LifecycleBadge(status models.LifecycleStatus) string {
	return Badge(string(status), LifecycleLevel(status))
}

// SeverityLevel maps an advisory severity to a status level
func SeverityLevel(sev models.AdvisorySeverity) StatusLevel {
	if sev == models.SeverityWarning {
		return StatusWarning
	}
	return StatusInfo
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := levelColors(level)
	style := lipgloss.NewStyle().Foreground(bg)

	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := levelColors(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}

// DeltaBadge renders a change indicator. With invertColors an increase is
// shown as a warning (utilization), otherwise as good (capacity).
func DeltaBadge(delta float64, unit string, invertColors bool) string {
	var text string
	var level StatusLevel

	switch {
	case delta > 0:
		text = fmt.Sprintf("+%s%s", formatDelta(delta), unit)
		level = StatusOK
		if invertColors {
			level = StatusWarning
		}
	case delta < 0:
		text = fmt.Sprintf("%s%s", formatDelta(delta), unit)
		level = StatusWarning
		if invertColors {
			level = StatusOK
		}
	default:
		text = "0" + unit
		level = StatusNeutral
	}

	return Badge(text, level)
}

// formatDelta drops the decimal for whole numbers
func formatDelta(d float64) string {
	if d == float64(int64(d)) {
		return fmt.Sprintf("%d", int64(d))
	}
	return fmt.Sprintf("%.1f", d)
}
