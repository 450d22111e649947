// Package theme defines color themes for the outlay TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Highlighted surface (active tab, selected row)
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Accent-colored borders for focus states
	TextDim      lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted    lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Primary accent (active states)
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
}

// Active is the currently selected theme.
var Active = Dark

// Dark is the default theme.
var Dark = Theme{
	Name:         "dark",
	Background:   lipgloss.Color("#0F172A"),
	Surface:      lipgloss.Color("#1E293B"),
	SurfaceHover: lipgloss.Color("#334155"),
	Border:       lipgloss.Color("#334155"),
	BorderAccent: lipgloss.Color("#60A5FA"),
	TextDim:      lipgloss.Color("#475569"),
	TextMuted:    lipgloss.Color("#94A3B8"),
	TextPrimary:  lipgloss.Color("#F8FAFC"),
	Accent:       lipgloss.Color("#60A5FA"),
	Green:        lipgloss.Color("#4ADE80"),
	Orange:       lipgloss.Color("#FBBF24"),
	Red:          lipgloss.Color("#F87171"),
}

// Light is the light theme.
var Light = Theme{
	Name:         "light",
	Background:   lipgloss.Color("#F8FAFC"),
	Surface:      lipgloss.Color("#F1F5F9"),
	SurfaceHover: lipgloss.Color("#E2E8F0"),
	Border:       lipgloss.Color("#CBD5E1"),
	BorderAccent: lipgloss.Color("#3B82F6"),
	TextDim:      lipgloss.Color("#94A3B8"),
	TextMuted:    lipgloss.Color("#64748B"),
	TextPrimary:  lipgloss.Color("#0F172A"),
	Accent:       lipgloss.Color("#3B82F6"),
	Green:        lipgloss.Color("#22C55E"),
	Orange:       lipgloss.Color("#F59E0B"),
	Red:          lipgloss.Color("#EF4444"),
}

// All lists every available theme.
var All = []Theme{Dark, Light}

// SetActive switches the active theme by name, keeping the current theme
// if the name is unknown.
func SetActive(name string) {
	for _, t := range All {
		if t.Name == name {
			Active = t
			return
		}
	}
}
