// Package tui provides the interactive Bubble Tea dashboard for outlay.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"outlay/internal/auth"
	"outlay/internal/config"
	"outlay/internal/model"
	"outlay/internal/store"
	"outlay/internal/tui/components"
	"outlay/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 120

	opTimeout = 15 * time.Second
)

// fetchDoneMsg is sent when a FetchAll completes (success or failure; the
// store records which).
type fetchDoneMsg struct{}

// saveDoneMsg is sent when a create or update landed.
type saveDoneMsg struct {
	expense model.Expense
	edited  bool
}

// deleteDoneMsg is sent when a remove landed.
type deleteDoneMsg struct{}

// opErrMsg is sent when a write-path operation failed.
type opErrMsg struct{ err error }

// authDoneMsg is sent when login or registration succeeded.
type authDoneMsg struct{}

// authErrMsg is sent when login or registration failed.
type authErrMsg struct{ err error }

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	session *auth.Session
	auth    *auth.Manager
	store   *store.Store

	// UI state
	width     int
	height    int
	activeTab int
	loaded    bool
	fetching  bool
	showHelp  bool
	spinner   spinner.Model
	status    string
	statusErr bool

	// Login form (shown whenever the session is unauthenticated)
	login *loginState

	// Expenses tab
	cursor    int
	dialog    *expenseDialog
	confirmID string
}

// NewApp creates the root TUI model.
func NewApp(cfg config.Config, session *auth.Session, mgr *auth.Manager, st *store.Store) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		cfg:     cfg,
		session: session,
		auth:    mgr,
		store:   st,
		spinner: sp,
	}
	if !session.Authenticated() {
		a.login = newLoginState()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.login != nil {
		cmds = append(cmds, a.login.form.Init())
	} else {
		cmds = append(cmds, a.fetchCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case fetchDoneMsg:
		a.loaded = true
		a.fetching = false
		a.clampCursor()
		if err := a.store.FetchErr(); err != nil {
			if a.store.Stale() {
				a.setStatus("offline: showing cached data", true)
			} else {
				a.setStatus("fetch failed: showing last-known data", true)
			}
		} else {
			a.setStatus("", false)
		}
		return a, nil

	case saveDoneMsg:
		a.dialog = nil
		if msg.edited {
			a.setStatus("expense updated", false)
		} else {
			a.setStatus(fmt.Sprintf("added %q", msg.expense.Title), false)
			a.cursor = 0
		}
		return a, nil

	case deleteDoneMsg:
		a.confirmID = ""
		a.clampCursor()
		a.setStatus("expense deleted", false)
		return a, nil

	case opErrMsg:
		a.confirmID = ""
		a.setStatus(writeErrText(msg.err), true)
		if a.dialog != nil {
			// Reopen the form with the entered values so the user can
			// correct them or dismiss the dialog.
			a.dialog = reopenDialog(a.dialog)
			return a, a.dialog.form.Init()
		}
		return a, nil

	case authDoneMsg:
		a.login = nil
		a.loaded = false
		a.fetching = true
		a.setStatus("", false)
		return a, a.fetchCmd()

	case authErrMsg:
		return a.handleAuthErr(msg.err)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Forward everything else to whichever form is active.
	if a.login != nil {
		return a.updateLogin(msg)
	}
	if a.dialog != nil {
		return a.updateDialog(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.login != nil {
		return a.updateLogin(msg)
	}
	if a.dialog != nil {
		return a.updateDialog(msg)
	}

	if a.confirmID != "" {
		switch key {
		case "y", "enter":
			return a, a.deleteCmd(a.confirmID)
		case "n", "esc":
			a.confirmID = ""
			return a, nil
		}
		return a, nil
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "r":
		if !a.fetching {
			a.fetching = true
			return a, a.fetchCmd()
		}
		return a, nil
	case "T":
		return a.toggleTheme()
	case "L":
		return a.logout()
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if a.activeTab == 0 {
		return a.handleExpensesKey(key)
	}
	return a, nil
}

func (a App) toggleTheme() (tea.Model, tea.Cmd) {
	next := theme.Dark
	if theme.Active.Name == theme.Dark.Name {
		next = theme.Light
	}
	theme.Active = next
	if err := config.SaveTheme(next.Name); err != nil {
		a.setStatus("could not save theme", true)
	} else {
		a.setStatus("theme: "+next.Name, false)
	}
	return a, nil
}

func (a App) logout() (tea.Model, tea.Cmd) {
	if err := a.auth.Logout(); err != nil {
		a.setStatus("logout: token file not updated", true)
	} else {
		a.setStatus("", false)
	}
	a.login = newLoginState()
	a.loaded = false
	a.cursor = 0
	a.activeTab = 0
	return a, a.login.form.Init()
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

func (a *App) clampCursor() {
	n := a.store.Len()
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols), need %d.\n", a.width, minTerminalWidth)
	}

	if a.login != nil {
		return a.viewLogin()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(a.spinner.View() + " Loading expenses...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := []struct{ key, desc string }{
		{"x / b / s", "switch tab"},
		{"tab", "next tab"},
		{"j / k", "move selection"},
		{"a", "add expense"},
		{"e", "edit selected"},
		{"d", "delete selected"},
		{"r", "refresh from server"},
		{"T", "toggle dark/light theme"},
		{"L", "log out"},
		{"q", "quit"},
	}

	body := ""
	for _, r := range rows {
		body += fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", r.key)), descStyle.Render(r.desc))
	}

	card := components.ContentCard("Keys", body, 44)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	cw := a.contentWidth()

	header := a.renderHeader(cw)
	tabbar := components.RenderTabBar(a.activeTab)

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderExpensesTab(cw)
	case 1:
		content = a.renderBreakdownTab(cw)
	case 2:
		content = a.renderSettingsTab(cw)
	}

	status := a.status
	if a.fetching {
		status = a.spinner.View() + " refreshing"
	}
	statusbar := components.RenderStatusBar(a.width, status, a.statusErr)

	body := header + "\n" + tabbar + "\n\n" + content

	// Pin the status bar to the bottom of the terminal.
	bodyHeight := lipgloss.Height(body)
	gap := a.height - bodyHeight - 1
	for i := 0; i < gap; i++ {
		body += "\n"
	}
	return body + "\n" + statusbar
}

func (a App) renderHeader(cw int) string {
	widths := components.LayoutRow(cw, 3)

	titleCard := components.MetricCard("outlay", "Expense Tracker", widths[0])
	totalCard := components.MetricCard("Total", formatAmountCell(a.store.Total()), widths[1])
	countCard := components.MetricCard("Records", fmt.Sprintf("%d", a.store.Len()), widths[2])

	return components.CardRow([]string{titleCard, totalCard, countCard})
}

// fetchCmd runs FetchAll off the UI goroutine. The store records success
// or failure itself; the message only triggers a re-render.
func (a App) fetchCmd() tea.Cmd {
	st := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		st.FetchAll(ctx)
		return fetchDoneMsg{}
	}
}

func (a App) saveCmd(editID string, d model.Draft) tea.Cmd {
	st := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if editID != "" {
			updated, err := st.Update(ctx, editID, d)
			if err != nil {
				return opErrMsg{err}
			}
			return saveDoneMsg{expense: updated, edited: true}
		}

		created, err := st.Create(ctx, d)
		if err != nil {
			return opErrMsg{err}
		}
		return saveDoneMsg{expense: created}
	}
}

func (a App) deleteCmd(id string) tea.Cmd {
	st := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := st.Remove(ctx, id); err != nil {
			return opErrMsg{err}
		}
		return deleteDoneMsg{}
	}
}

func writeErrText(err error) string {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "save failed: " + err.Error()
}

// truncStr shortens s to limit runes, ending in an ellipsis. Truncation
// counts runes so multi-byte titles never split mid-character.
func truncStr(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return string(r[:1])
	}
	return string(r[:limit-1]) + "…"
}
