package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderError() string {
	var b strings.Builder

	// Error icon and title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Error message
	errMsg := "Unknown error"
	if a.state.err != nil {
		errMsg = a.state.err.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, max(a.width-4, 20))).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	// Suggestions based on error type
	var suggestions []string
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "permission denied"):
		suggestions = append(suggestions, "Check the output directory is writable")
		suggestions = append(suggestions, "Or pass --out with another directory")
	case strings.Contains(errLower, "no such file") || strings.Contains(errLower, "not found"):
		suggestions = append(suggestions, "Check the output directory exists")
	case strings.Contains(errLower, "template") || strings.Contains(errLower, "render"):
		suggestions = append(suggestions, "Check prompt.template in ~/.config/storyprompt/config.yaml")
	case strings.Contains(errLower, "no matching"):
		suggestions = append(suggestions, "Check the ids against the ID column of the sheet")
	}

	if len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, max(a.width-4, 20))).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	status := styleStatusBar.Render("[Enter] Back  [Ctrl+C] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
