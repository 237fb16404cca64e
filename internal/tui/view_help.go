package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Story list
	bindings := []key.Binding{keys.Toggle, keys.All, keys.Type, keys.Preview, keys.Enter, keys.Save, keys.Help, keys.Quit}
	var commands []string
	for _, k := range bindings {
		h := k.Help()
		commands = append(commands, "  "+padRight(h.Key, 14)+" "+h.Desc)
	}
	commands = append(commands,
		"",
		"  Up/Down, j/k moves through the stories",
	)

	commandsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(commands, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, commandsBox))
	b.WriteString("\n\n")

	// Workflow
	workflow := []string{
		"  1. Pick stories and save the prompt",
		"  2. Paste the prompt into Copilot chat",
		"  3. Save the answer to a file",
		"  4. storyprompt import <file>",
	}

	workflowTitle := styleSubtitle.Render("Workflow")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, workflowTitle))
	b.WriteString("\n\n")

	workflowBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(workflow, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, workflowBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
