package components

import (
	"fmt"
	"strings"

	"outlay/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// CategoryBar is one entry of a horizontal breakdown chart.
type CategoryBar struct {
	Label  string
	Value  float64
	Amount string // pre-formatted amount column
	Color  string // fill color hex
}

// BreakdownChart renders horizontal bars with label, bar, amount, and
// share columns, sized to width.
func BreakdownChart(bars []CategoryBar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	amountW := 0
	total := 0.0
	maxVal := 0.0
	for _, b := range bars {
		if len(b.Label) > labelW {
			labelW = len(b.Label)
		}
		if len(b.Amount) > amountW {
			amountW = len(b.Amount)
		}
		total += b.Value
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	shareW := 6
	barW := width - labelW - amountW - shareW - 4
	if barW < 8 {
		barW = 8
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	shareStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, bar := range bars {
		fill := int(bar.Value / maxVal * float64(barW))
		if fill < 1 && bar.Value > 0 {
			fill = 1
		}
		if fill > barW {
			fill = barW
		}

		share := 0.0
		if total > 0 {
			share = bar.Value / total * 100
		}

		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(bar.Color))
		trackStyle := lipgloss.NewStyle().Foreground(t.TextDim)

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, bar.Label)))
		b.WriteString(" ")
		b.WriteString(barStyle.Render(strings.Repeat("█", fill)))
		b.WriteString(trackStyle.Render(strings.Repeat("░", barW-fill)))
		b.WriteString(" ")
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, bar.Amount)))
		b.WriteString(shareStyle.Render(fmt.Sprintf(" %5.1f%%", share)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
