package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder
	out := a.state.output

	title := lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true).
		Render("Prompt saved")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Found %d of %d stories", out.Selection.Matched.Len(), len(out.Selection.Requested)),
		fmt.Sprintf("File: %s", out.Path),
		"",
		"Next steps:",
		"  1. Open the file and copy its content",
		"  2. Paste it into Microsoft 365 Copilot",
		"  3. Save the answer and run: storyprompt import <file>",
	}
	if out.Selection.Partial() {
		lines = append([]string{"Not found: " + strings.Join(out.Selection.Missing, ", "), ""}, lines...)
	}

	box := styleBox.Copy().
		Width(min(70, max(a.width-4, 20))).
		BorderForeground(colorSuccess).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Enter] Back to stories  [Ctrl+C] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
