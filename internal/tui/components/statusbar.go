package components

import (
	"outlay/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with a left help hint and
// a right-aligned status message. When isErr is set the message renders in
// the error color.
func RenderStatusBar(width int, status string, isErr bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	msgStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if isErr {
		msgStyle = lipgloss.NewStyle().Foreground(t.Red)
	}

	left := " [?]help  [q]uit"
	right := ""
	if status != "" {
		right = msgStyle.Render(status) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return barStyle.Render(bar)
}
