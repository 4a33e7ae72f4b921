// ABOUTME: Utilization bar with visual threshold zones
// ABOUTME: Fill is clamped to the bar while the label shows the raw percentage

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width         int
	WarnThreshold float64 // Percentage where warning zone starts
	CritThreshold float64 // Percentage where critical zone starts
	OKColor       lipgloss.Color
	WarnColor     lipgloss.Color
	CritColor     lipgloss.Color
	EmptyColor    lipgloss.Color
	ShowZones     bool // Show threshold markers in the bar
}

// DefaultProgressBarConfig uses the CPU advisory thresholds (70 info, 90 warning)
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:         20,
		WarnThreshold: 70,
		CritThreshold: 90,
		OKColor:       lipgloss.Color("#10B981"), // Green
		WarnColor:     lipgloss.Color("#F59E0B"), // Amber
		CritColor:     lipgloss.Color("#EF4444"), // Red
		EmptyColor:    lipgloss.Color("#374151"), // Dark gray
		ShowZones:     true,
	}
}

// MemoryProgressBarConfig marks only the memory warning threshold (85)
func MemoryProgressBarConfig() ProgressBarConfig {
	cfg := DefaultProgressBarConfig()
	cfg.WarnThreshold = 85
	cfg.CritThreshold = 85
	return cfg
}

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// ProgressBar renders a bar with threshold zones. Values above 100 fill the bar.
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	filled := int(clampPercent(percent) / 100.0 * float64(config.Width))
	if filled > config.Width {
		filled = config.Width
	}

	warnPos := int(config.WarnThreshold / 100.0 * float64(config.Width))
	critPos := int(config.CritThreshold / 100.0 * float64(config.Width))

	var bar strings.Builder
	bar.WriteString("[")

	for i := 0; i < config.Width; i++ {
		var char string
		var color lipgloss.Color

		if i < filled {
			char = "█"
			switch {
			case i >= critPos:
				color = config.CritColor
			case i >= warnPos:
				color = config.WarnColor
			default:
				color = config.OKColor
			}
		} else {
			color = config.EmptyColor
			if config.ShowZones && (i == warnPos || i == critPos) {
				char = "│"
			} else {
				char = "░"
			}
		}

		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(char))
	}

	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel appends the unclamped percentage and a status icon
func ProgressBarWithLabel(percent float64, config ProgressBarConfig, showPercent bool) string {
	bar := ProgressBar(percent, config)

	if !showPercent {
		return bar
	}

	statusColor, statusIcon := zoneStatus(percent, config)

	percentStr := fmt.Sprintf("%5.1f%%", percent)
	styledPercent := lipgloss.NewStyle().Foreground(statusColor).Render(percentStr)
	styledIcon := lipgloss.NewStyle().Foreground(statusColor).Render(statusIcon)

	return fmt.Sprintf("%s %s %s", bar, styledPercent, styledIcon)
}

// zoneStatus is strictly-greater-than, matching the advisory rules
func zoneStatus(percent float64, config ProgressBarConfig) (lipgloss.Color, string) {
	switch {
	case percent > config.CritThreshold:
		return config.CritColor, "✗"
	case percent > config.WarnThreshold:
		return config.WarnColor, "⚠"
	default:
		return config.OKColor, "✓"
	}
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	filled := int(clampPercent(percent) / 100.0 * float64(width))
	empty := width - filled

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", empty))
}
