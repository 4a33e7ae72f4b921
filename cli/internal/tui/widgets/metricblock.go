// ABOUTME: Compact metric block widget for the results screen
// ABOUTME: Combines icon, value, bar or sparkline, and subtitle in a bordered box

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/workflow-sizer/cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#7C3AED"), // Purple
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// topBorder draws ┌─ title ───┐ sized to the block width
func topBorder(icon icons.Icon, title string, config MetricBlockConfig) string {
	innerWidth := config.Width - 4
	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	return fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-lipgloss.Width(titleStr)-1)))
}

// padLine renders │  content   │ with padding based on display width
func padLine(content string, innerWidth int) string {
	return fmt.Sprintf("│  %s%s│", content, strings.Repeat(" ", max(0, innerWidth-lipgloss.Width(content))))
}

func bottomBorder(width int) string {
	return fmt.Sprintf("└%s┘", strings.Repeat("─", width-2))
}

func withDefaults(config MetricBlockConfig) MetricBlockConfig {
	if config.Width <= 0 {
		config.Width = 22
	}
	return config
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title string, value string, subtitle string, config MetricBlockConfig) string {
	config = withDefaults(config)
	innerWidth := config.Width - 4

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(icon, title, config)),
		borderStyle.Render(padLine(valueStyle.Render(truncate(value, innerWidth)), innerWidth)),
		borderStyle.Render(padLine(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render(bottomBorder(config.Width)),
	}, "\n")
}

// CountBlock renders a single integer metric such as the worker count
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// MetricBlockWithBar renders a utilization block. The bar is clamped, the
// printed percentage is not.
func MetricBlockWithBar(icon icons.Icon, title string, percent float64, details string, bar ProgressBarConfig, config MetricBlockConfig) string {
	config = withDefaults(config)
	innerWidth := config.Width - 4

	statusColor, statusIcon := zoneStatus(percent, bar)

	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(statusColor)
	value := fmt.Sprintf("%s %s",
		valueStyle.Render(fmt.Sprintf("%.1f%%", percent)),
		lipgloss.NewStyle().Foreground(statusColor).Render(statusIcon))

	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(icon, title, config)),
		borderStyle.Render(padLine(value, innerWidth)),
		borderStyle.Render(padLine(CompactProgressBar(percent, innerWidth, statusColor), innerWidth)),
		borderStyle.Render(padLine(detailStyle.Render(truncate(details, innerWidth)), innerWidth)),
		borderStyle.Render(bottomBorder(config.Width)),
	}, "\n")
}

// MetricBlockWithSparkline renders a value next to a sparkline
func MetricBlockWithSparkline(icon icons.Icon, title string, value string, sparkData []float64, subtitle string, config MetricBlockConfig) string {
	config = withDefaults(config)
	innerWidth := config.Width - 4
	sparkWidth := min(len(sparkData), max(0, innerWidth-lipgloss.Width(value)-2))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	line := valueStyle.Render(value)
	if sparkWidth > 0 {
		line += "  " + Sparkline(sparkData, sparkWidth, lipgloss.Color("#7C3AED"))
	}

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(icon, title, config)),
		borderStyle.Render(padLine(line, innerWidth)),
		borderStyle.Render(padLine(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render(bottomBorder(config.Width)),
	}, "\n")
}

// truncate shortens a string to maxLen runes with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
