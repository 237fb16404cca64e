// Package styles holds the lipgloss styles shared by the picker and the
// command line output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#06B6D4")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")

	// Section titles
	Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	// Secondary text
	Subtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	Success = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	Error = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	// Box
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
)
