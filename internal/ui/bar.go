package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Value bar block characters.
const (
	barFilled = '█'
	barEmpty  = '░'
)

// RenderValueBar visualizes a continuous feature value against its maximum.
// Output format: [██████████████░░░░░░] 70 / 100
// A zero maximum renders an empty bar; ddcutil reports max 0 for a handful
// of write-only features.
func RenderValueBar(current, max uint16, width int) string {
	if width <= 0 {
		return ""
	}

	frac := 0.0
	if max > 0 {
		frac = float64(current) / float64(max)
	}
	if frac > 1 {
		frac = 1
	}

	filledCount := int(frac * float64(width))
	if filledCount > width {
		filledCount = width
	}
	emptyCount := width - filledCount

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteRune('[')
	for i := 0; i < filledCount; i++ {
		sb.WriteRune(barFilled)
	}
	for i := 0; i < emptyCount; i++ {
		sb.WriteRune(barEmpty)
	}
	sb.WriteRune(']')

	style := lipgloss.NewStyle().Foreground(ColorInfo)
	return style.Render(sb.String()) + fmt.Sprintf(" %d / %d", current, max)
}
