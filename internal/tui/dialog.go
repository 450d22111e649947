package tui

import (
	"fmt"
	"strings"
	"time"

	"outlay/internal/cli"
	"outlay/internal/model"
	"outlay/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/shopspring/decimal"
)

// expenseDialog is the add/edit form. editID is empty for a new expense.
type expenseDialog struct {
	form     *huh.Form
	editID   string
	title    string
	amount   string
	category model.Category
	date     string

	// submitted guards the completed-state branch so a save fires once
	// per submit, not on every message while the request is in flight.
	submitted bool
}

func newExpenseDialog(editID string, seed model.Draft) *expenseDialog {
	d := &expenseDialog{
		editID:   editID,
		title:    seed.Title,
		category: seed.Category,
		date:     time.Now().Format("2006-01-02"),
	}
	if d.category == "" {
		d.category = model.CategoryOther
	}
	if !seed.Amount.IsZero() {
		d.amount = seed.Amount.String()
	}
	if !seed.Date.IsZero() {
		d.date = seed.Date.Format("2006-01-02")
	}

	categoryOptions := make([]huh.Option[model.Category], 0, len(model.Categories))
	for _, c := range model.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(string(c), c))
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(120).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title must not be empty")
					}
					return nil
				}).
				Value(&d.title),
			huh.NewInput().
				Title("Amount").
				CharLimit(20).
				Validate(func(s string) error {
					v, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if !v.IsPositive() {
						return fmt.Errorf("must be greater than zero")
					}
					return nil
				}).
				Value(&d.amount),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(categoryOptions...).
				Value(&d.category),
			huh.NewInput().
				Title("Date").
				Placeholder("2006-01-02").
				CharLimit(10).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}).
				Value(&d.date),
		),
	)
	return d
}

// draft builds the validated draft from the form values.
func (d *expenseDialog) draft() (model.Draft, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(d.amount))
	if err != nil {
		return model.Draft{}, &model.ValidationError{Field: "amount", Reason: "not a number"}
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(d.date))
	if err != nil {
		return model.Draft{}, &model.ValidationError{Field: "date", Reason: "use YYYY-MM-DD"}
	}

	draft := model.Draft{
		Title:    strings.TrimSpace(d.title),
		Amount:   amount,
		Category: d.category,
		Date:     date,
	}
	return draft, draft.Validate()
}

// reopenDialog rebuilds the form with the values the user entered, so a
// failed submit can be corrected or dismissed.
func reopenDialog(d *expenseDialog) *expenseDialog {
	nd := newExpenseDialog(d.editID, model.Draft{Title: d.title, Category: d.category})
	nd.amount = d.amount
	nd.date = d.date
	return nd
}

func (a App) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.dialog.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.dialog.form = f
	}

	if a.dialog.form.State == huh.StateAborted {
		a.dialog = nil
		return a, nil
	}

	if a.dialog.form.State == huh.StateCompleted {
		if a.dialog.submitted {
			// Save already in flight; wait for its message.
			return a, nil
		}
		draft, err := a.dialog.draft()
		if err != nil {
			a.dialog = reopenDialog(a.dialog)
			a.setStatus(err.Error(), true)
			return a, a.dialog.form.Init()
		}
		a.dialog.submitted = true
		return a, a.saveCmd(a.dialog.editID, draft)
	}

	return a, cmd
}

func (a App) viewDialog() string {
	t := theme.Active

	header := "New expense"
	if a.dialog.editID != "" {
		header = "Edit expense"
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	body := titleStyle.Render(header) + "\n\n" + a.dialog.form.View()

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Width(52).
		Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// formatAmountCell renders an amount for table and card cells.
func formatAmountCell(d decimal.Decimal) string {
	return cli.FormatAmount(d)
}
