package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// RateBar displays a count of hits out of a total as a horizontal bar.
type RateBar struct {
	Label string
	Hits  int
	Total int
	Width int
}

// NewRateBar creates a new rate bar.
func NewRateBar(label string, hits, total, width int) RateBar {
	return RateBar{Label: label, Hits: hits, Total: total, Width: width}
}

// Ratio returns Hits/Total, or 0 when Total is 0.
func (r RateBar) Ratio() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Total)
}

// View renders the bar.
func (r RateBar) View() string {
	var result string

	if r.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(r.Label) + "  "
	}

	counts := fmt.Sprintf("  %d/%d", r.Hits, r.Total)
	barWidth := r.Width - lipgloss.Width(result) - len(counts)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * r.Ratio())
	filled = max(0, min(filled, barWidth))

	result += theme.RateFilled.Render(strings.Repeat(" ", filled))
	result += theme.RateEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counts)
	return result
}
