package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/storyprompt/internal/config"
	"github.com/sant0-9/storyprompt/internal/record"
	"github.com/sant0-9/storyprompt/internal/selector"
	"github.com/sant0-9/storyprompt/internal/tui/styles"
)

const titleWidth = 60

var (
	exportAll bool
	maxChars  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stories in the workbook",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var promptCmd = &cobra.Command{
	Use:   "prompt <ids>...",
	Short: "Write a Copilot prompt for the given story ids",
	Long: `Writes prompt_copilot_<timestamp>.txt with every story whose id is given.
Ids may be separated by spaces, commas or semicolons. With --max-chars the
prompt is split into numbered files that each fit the chat input limit.

Example:
  storyprompt prompt HU001 HU002
  storyprompt prompt "HU001,HU002"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrompt,
}

var exportCmd = &cobra.Command{
	Use:   "export [ids]...",
	Short: "Write stories in the record format",
	Long: `Writes historias_<timestamp>.txt in the same format Copilot is asked to
answer in, so it can be edited and imported back.`,
	RunE: runExport,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadStories(cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	heading(w, "Available stories")
	printStories(w, t, cfg.Columns)
	return nil
}

func printStories(w io.Writer, t *record.Table, col config.Columns) {
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		fmt.Fprintf(w, "%s | %s | R%s | %s\n",
			t.ID(i),
			r.Get(col.LineOfBusiness),
			r.Get(col.Release),
			shorten(r.Get(col.Title), titleWidth))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Subtitle.Render(fmt.Sprintf("Total stories: %d", t.Len())))
}

// shorten cuts s to n runes and marks the cut with "...".
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ids := selector.ParseIDs(strings.Join(args, " "))
	if len(ids) == 0 {
		return fmt.Errorf("no story ids given")
	}
	t, err := loadStories(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	heading(w, "Generating Copilot prompt")
	svc := newService(cfg, logger)

	limit := cfg.Prompt.MaxChars
	if maxChars > 0 {
		limit = maxChars
	}
	if limit > 0 {
		sel, parts, err := svc.PromptBatches(t, ids, r, limit)
		if sel != nil {
			printSelection(w, sel)
		}
		if err != nil {
			return err
		}
		for i, p := range parts {
			fmt.Fprintf(w, "%s %s (%s)\n",
				styles.Success.Render(fmt.Sprintf("Prompt %d/%d written:", i+1, len(parts))),
				p.Path, strings.Join(p.Stories, ", "))
		}
		nextSteps(w, parts[0].Path)
		return nil
	}

	out, err := svc.Prompt(t, ids, r)
	if out != nil && out.Selection != nil {
		printSelection(w, out.Selection)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, styles.Success.Render("Prompt written: ")+out.Path)
	nextSteps(w, out.Path)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ids := selector.ParseIDs(strings.Join(args, " "))
	if len(ids) == 0 && !exportAll {
		return fmt.Errorf("give story ids or --all")
	}
	if exportAll {
		ids = nil
	}
	t, err := loadStories(cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	out, err := newService(cfg, logger).Export(t, ids)
	if out != nil && out.Selection != nil && len(ids) > 0 {
		printSelection(w, out.Selection)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, styles.Success.Render(
		fmt.Sprintf("Exported %d stories: ", out.Selection.Matched.Len()))+out.Path)
	return nil
}
