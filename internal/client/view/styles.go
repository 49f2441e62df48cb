// Package view renders API records for the terminal: tables, filter chips,
// the pagination bar, highlighted titles and report bodies.
package view

import "github.com/charmbracelet/lipgloss"

var (
	accent   = lipgloss.Color("#8BC34A")
	critical = lipgloss.Color("#e53935")
	elevated = lipgloss.Color("#FFC107")
	moderate = lipgloss.Color("#2196F3")
	muted    = lipgloss.Color("#6b7280")
)

// Styles groups the lipgloss styles shared by every renderer.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Chip      lipgloss.Style
	Current   lipgloss.Style
	Box       lipgloss.Style
}

// DefaultStyles returns the palette used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:      lipgloss.NewStyle().Padding(0, 1),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Highlight: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(critical),
		Chip:      lipgloss.NewStyle().Foreground(accent),
		Current:   lipgloss.NewStyle().Reverse(true),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// TierStyle colors a tier or stat severity.
func TierStyle(tier string) lipgloss.Style {
	switch tier {
	case "tier_1", "critical":
		return lipgloss.NewStyle().Foreground(critical).Bold(true)
	case "tier_2", "elevated":
		return lipgloss.NewStyle().Foreground(elevated)
	case "tier_3", "moderate":
		return lipgloss.NewStyle().Foreground(moderate)
	default:
		return lipgloss.NewStyle()
	}
}
