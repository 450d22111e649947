package tui

import (
	"fmt"
	"strings"

	"outlay/internal/cli"
	"outlay/internal/model"
	"outlay/internal/tui/components"
	"outlay/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) handleExpensesKey(key string) (tea.Model, tea.Cmd) {
	expenses := a.store.Expenses()

	switch key {
	case "j", "down":
		if a.cursor < len(expenses)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "g":
		a.cursor = 0
		return a, nil
	case "G":
		if len(expenses) > 0 {
			a.cursor = len(expenses) - 1
		}
		return a, nil
	case "a":
		a.dialog = newExpenseDialog("", model.Draft{})
		return a, a.dialog.form.Init()
	case "e", "enter":
		if a.cursor < len(expenses) {
			e := expenses[a.cursor]
			a.dialog = newExpenseDialog(e.ID, model.Draft{
				Title:    e.Title,
				Amount:   e.Amount,
				Category: e.Category,
				Date:     e.Date,
			})
			return a, a.dialog.form.Init()
		}
		return a, nil
	case "d":
		if a.cursor < len(expenses) {
			a.confirmID = expenses[a.cursor].ID
		}
		return a, nil
	}
	return a, nil
}

func (a App) renderExpensesTab(cw int) string {
	if a.dialog != nil {
		return a.viewDialog()
	}
	if a.confirmID != "" {
		return a.viewConfirmDelete()
	}

	t := theme.Active
	expenses := a.store.Expenses()

	if len(expenses) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No expenses yet. Press [a] to add one.")
		return components.ContentCard("Expenses", empty, cw)
	}

	innerW := components.CardInnerWidth(cw)
	amountW := 12
	dateW := 10
	catW := 13
	titleW := innerW - amountW - dateW - catW - 5
	if titleW < 12 {
		titleW = 12
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s  %-*s  %*s  %*s",
		titleW, "Title", catW, "Category", amountW, "Amount", dateW, "Date")))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	for i, e := range expenses {
		line := fmt.Sprintf("%-*s  %-*s  %*s  %*s",
			titleW, truncStr(e.Title, titleW),
			catW, string(e.Category),
			amountW, formatAmountCell(e.Amount),
			dateW, cli.FormatDate(e.Date),
		)
		if i == a.cursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[a]dd  [e]dit  [d]elete  [r]efresh"))

	return components.ContentCard("Expenses", b.String(), cw)
}

func (a App) viewConfirmDelete() string {
	t := theme.Active

	title := a.confirmID
	for _, e := range a.store.Expenses() {
		if e.ID == a.confirmID {
			title = e.Title
			break
		}
	}

	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := warnStyle.Render(fmt.Sprintf("Delete %q?", truncStr(title, 40))) + "\n\n" +
		mutedStyle.Render("[y] delete   [n] cancel")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Orange).
		Padding(1, 2).
		Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}
