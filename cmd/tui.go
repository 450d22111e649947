package cmd

import (
	"fmt"

	"outlay/internal/tui"
	"outlay/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Logs would corrupt the alternate screen
	flagQuiet = true

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	theme.SetActive(d.cfg.Appearance.Theme)

	// Force TrueColor so the palette renders even under conservative TERM
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(d.cfg, d.session, d.auth, d.store)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
