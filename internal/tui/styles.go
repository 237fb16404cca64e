package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/storyprompt/internal/tui/styles"
)

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary   = styles.ColorPrimary
	colorSecondary = styles.ColorSecondary
	colorSuccess   = styles.ColorSuccess
	colorError     = styles.ColorError
	colorMuted     = styles.ColorMuted
	colorWhite     = lipgloss.Color("#F9FAFB")

	// Logo style
	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleWarn = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorPrimary).
		Bold(false)
	return s
}

// storyColumns sizes the table so the title takes what is left of width.
func storyColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "", Width: 3},
		{Title: "ID", Width: 10},
		{Title: "Ramo", Width: 12},
		{Title: "Release", Width: 8},
		{Title: "Titulo", Width: 20},
	}
	used := 0
	for _, c := range cols[:4] {
		used += c.Width + 2
	}
	if rest := width - used - 4; rest > cols[4].Width {
		cols[4].Width = rest
	}
	return cols
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
