package tui

import (
	"context"
	"errors"

	"outlay/internal/auth"
	"outlay/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// loginState holds the login/register form shown while unauthenticated.
type loginState struct {
	form     *huh.Form
	mode     string
	username string
	password string
	errText  string

	// submitted guards the completed-state branch so the auth request
	// fires once per submit while it is in flight.
	submitted bool
}

func newLoginState() *loginState {
	ls := &loginState{mode: modeLogin}
	ls.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account").
				Options(
					huh.NewOption("Sign in", modeLogin),
					huh.NewOption("Create account", modeRegister),
				).
				Value(&ls.mode),
			huh.NewInput().
				Title("Username").
				CharLimit(64).
				Value(&ls.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&ls.password),
		),
	)
	return ls
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.login.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.login.form = f
	}

	if a.login.form.State == huh.StateCompleted {
		if a.login.submitted {
			return a, nil
		}
		a.login.submitted = true
		return a, a.authCmd(a.login.mode, a.login.username, a.login.password)
	}
	if a.login.form.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) authCmd(mode, username, password string) tea.Cmd {
	mgr := a.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		var err error
		if mode == modeRegister {
			err = mgr.Register(ctx, username, password)
		} else {
			err = mgr.Login(ctx, username, password)
		}
		if err != nil {
			return authErrMsg{err}
		}
		return authDoneMsg{}
	}
}

// handleAuthErr rebuilds the login form with a generic failure message.
// Rejection renders the same text whatever the cause, so the view never
// reveals whether a username exists.
func (a App) handleAuthErr(err error) (tea.Model, tea.Cmd) {
	prev := a.login
	a.login = newLoginState()
	if prev != nil {
		a.login.username = prev.username
		a.login.mode = prev.mode
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		a.login.errText = "Invalid username or password."
	} else {
		a.login.errText = "Could not reach the server. Try again."
	}

	return a, a.login.form.Init()
}

func (a App) viewLogin() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	body := titleStyle.Render("outlay · sign in") + "\n\n"
	if a.login.errText != "" {
		body += errStyle.Render(a.login.errText) + "\n\n"
	}
	body += a.login.form.View()

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Width(48).
		Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}
