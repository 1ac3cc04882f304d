package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitquest/internal/ui/theme"
)

// ProgressBar displays a horizontal points bar such as "25/30".
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, value, maxValue, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Value: value,
		Max:   maxValue,
		Width: width,
	}
}

// Fraction returns Value/Max clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(float64(p.Value)/float64(p.Max), 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Value, p.Max)
	barWidth := max(p.Width-lipgloss.Width(result)-len(counter), 4)

	filled := int(float64(barWidth) * p.Fraction())
	fill := theme.ProgressFilled
	if filled == barWidth {
		fill = theme.ProgressComplete
	}

	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
	return result
}
