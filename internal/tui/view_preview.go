package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/storyprompt/internal/batch"
)

// markdownStyle picks the glamour style for the terminal background. It
// queries the terminal, so it runs once before the program starts.
func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func newMarkdown(style string, width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

// resizeMarkdown rebuilds the renderer only when the wrap width changes.
func (s *state) resizeMarkdown(width int) {
	if width == s.mdWidth && s.markdown != nil {
		return
	}
	s.mdWidth = width
	s.markdown = newMarkdown(s.mdStyle, width)
}

// renderMarkdown falls back to the raw text when glamour cannot render it.
func (s *state) renderMarkdown(text string) string {
	if s.markdown == nil {
		return text
	}
	out, err := s.markdown.Render(text)
	if err != nil {
		return text
	}
	return out
}

func (a *App) renderPreview() string {
	s := a.state
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(fmt.Sprintf("Prompt preview  %d stories", len(s.selectedIDs())))
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(s.preview.View())
	b.WriteString("\n")

	stats := fmt.Sprintf("%3.f%%  ~%d tokens", s.preview.ScrollPercent()*100, batch.EstimateTokens(s.rendered))
	b.WriteString(styleStatusBar.Render(stats + "  [Up/Down] Scroll  [Enter] Save  [Esc] Back"))

	return b.String()
}
