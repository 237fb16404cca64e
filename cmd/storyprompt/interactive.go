package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/storyprompt/internal/tui"
	"github.com/sant0-9/storyprompt/internal/tui/styles"
)

// runInteractive starts the story picker. Logging inside the program is
// discarded since it would draw over the alt screen.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadStories(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Deps{
		Table:    t,
		Renderer: r,
		Service:  newService(cfg, zap.NewNop()),
		Columns:  cfg.Columns,
		Source:   cfg.Workbook,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}

	if out := app.Output(); out != nil {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, styles.Success.Render("Prompt written: ")+out.Path)
		nextSteps(w, out.Path)
	}
	return nil
}
