// ABOUTME: Sparkline widget renders mini charts using block characters
// ABOUTME: Used for the per-release score profile across the catalog

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values (catalog order) scaled between their min and max
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = valueToBlock(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(result))
}

// SparklineHighlight renders a sparkline with the block at index marked in
// highlight color, e.g. the recommended release
func SparklineHighlight(values []float64, index int, color, highlight lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := bounds(values)
	base := lipgloss.NewStyle().Foreground(color)
	mark := lipgloss.NewStyle().Foreground(highlight).Bold(true)

	var b strings.Builder
	for i, v := range values {
		block := string(valueToBlock(v, lo, hi))
		if i == index {
			b.WriteString(mark.Render(block))
		} else {
			b.WriteString(base.Render(block))
		}
	}
	return b.String()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// sampleValues resamples the values slice to the target width
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)

	if len(values) < width {
		// Left-pad with the minimum so padding renders as the lowest block
		lo, _ := bounds(values)
		padding := width - len(values)
		for i := 0; i < padding; i++ {
			result[i] = lo
		}
		copy(result[padding:], values)
	} else {
		ratio := float64(len(values)) / float64(width)
		for i := 0; i < width; i++ {
			idx := int(float64(i) * ratio)
			if idx >= len(values) {
				idx = len(values) - 1
			}
			result[i] = values[idx]
		}
	}

	return result
}

// valueToBlock converts a value to a block character based on its position in the range
func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}

	normalized := (value - lo) / (hi - lo)

	idx := int(normalized * float64(len(SparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(SparklineBlocks) {
		idx = len(SparklineBlocks) - 1
	}

	return SparklineBlocks[idx]
}
