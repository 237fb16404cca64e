package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = "storyprompt"

func (a *App) renderList() string {
	s := a.state
	var b strings.Builder

	// Header
	header := lipgloss.JoinHorizontal(
		lipgloss.Bottom,
		styleLogo.Render(logo),
		"  ",
		styleSubtitle.Render(fmt.Sprintf("%s  %d stories", truncate(s.deps.Source, 40), s.deps.Table.Len())),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	if s.deps.Table.Len() == 0 {
		b.WriteString(styleSubtitle.Render("The sheet has no stories"))
	} else {
		b.WriteString(styleBox.Render(s.stories.View()))
	}
	b.WriteString("\n")

	if s.typing {
		b.WriteString(styleBox.Copy().
			BorderForeground(colorPrimary).
			Render(s.input.View()))
		b.WriteString("\n")
	}

	// Feedback
	status := fmt.Sprintf("%d selected", len(s.selected))
	if s.status != "" {
		status = s.status
	}
	b.WriteString(styleWarn.Render(status))
	b.WriteString("\n")

	hints := "[Space] Toggle  [a] All  [i] Type IDs  [p] Preview  [Enter] Save  [?] Help  [Esc] Quit"
	if s.typing {
		hints = "[Enter] Apply  [Esc] Cancel"
	}
	b.WriteString(styleStatusBar.Render(hints))

	return b.String()
}
