package tui

import (
	"fmt"
	"strings"

	"outlay/internal/config"
	"outlay/internal/tui/components"
	"outlay/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	session := "logged out"
	if a.session.Authenticated() {
		session = "logged in"
	}

	rows := []struct{ label, value string }{
		{"Server", a.cfg.Server.BaseURL},
		{"Session", session},
		{"Theme", theme.Active.Name},
		{"Config", config.ConfigPath()},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[T] toggle theme   [L] log out"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Edit the config file to change the server URL."))

	return components.ContentCard("Settings", b.String(), cw)
}
