package tui

import (
	"outlay/internal/tui/components"
	"outlay/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBreakdownTab(cw int) string {
	t := theme.Active
	data := a.store.AggregateByCategory()

	if data.Empty() {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("Nothing to chart yet.")
		return components.ContentCard("By Category", empty, cw)
	}

	innerW := components.CardInnerWidth(cw)

	bars := make([]components.CategoryBar, 0, len(data.Labels))
	for i, label := range data.Labels {
		bars = append(bars, components.CategoryBar{
			Label:  label,
			Value:  data.Values[i].InexactFloat64(),
			Amount: formatAmountCell(data.Values[i]),
			Color:  data.Colors[i],
		})
	}

	chart := components.BreakdownChart(bars, innerW)

	totalStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	body := chart + "\n\n" + totalStyle.Render("Total  "+formatAmountCell(data.Total()))

	return components.ContentCard("By Category", body, cw)
}
