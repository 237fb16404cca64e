package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/storyprompt/internal/interchange"
	"github.com/sant0-9/storyprompt/internal/sheet"
	"github.com/sant0-9/storyprompt/internal/tui/styles"
)

var importTarget string

var importCmd = &cobra.Command{
	Use:   "import <document>",
	Short: "Write a record document back into the workbook",
	Long: `Reads a document of "========== Historia n ==========" blocks, as
returned by Copilot or written by export, and updates the matching rows of
the workbook. Rows are matched by id and cells by column header. Empty
values never clear a cell. Use "-" to read the document from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	text, err := readDocument(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	target := importTarget
	if target == "" {
		target = cfg.Workbook
	}
	dest, err := sheet.Open(target, sheetOptions(cfg))
	if err != nil {
		return err
	}
	defer dest.Close()

	report, err := newService(cfg, logger).Import(text, dest)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	title := "Import into " + dest.Path()
	if name := dest.Sheet(); name != "" {
		title += " [" + name + "]"
	}
	heading(w, title)
	printImport(w, report)
	return nil
}

func readDocument(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

func printImport(w io.Writer, r *interchange.ImportReport) {
	fmt.Fprintf(w, "Blocks read: %d\n", r.Blocks)
	for _, c := range r.Updated {
		fmt.Fprintf(w, "  %s %s: %s\n", styles.Success.Render("updated"), c.ID, strings.Join(c.Columns, ", "))
	}
	if len(r.Unchanged) > 0 {
		fmt.Fprintln(w, styles.Subtitle.Render("Unchanged: "+strings.Join(r.Unchanged, ", ")))
	}
	if len(r.Unmatched) > 0 {
		fmt.Fprintln(w, styles.Warn.Render("Not in workbook: "+strings.Join(r.Unmatched, ", ")))
	}
	if len(r.UnknownColumns) > 0 {
		fmt.Fprintln(w, styles.Warn.Render("Unknown columns: "+strings.Join(r.UnknownColumns, ", ")))
	}
	for _, e := range r.Malformed {
		fmt.Fprintln(w, styles.Warn.Render("Skipped: "+e.Error()))
	}

	if r.Saved {
		fmt.Fprintln(w, styles.Success.Render(fmt.Sprintf("Saved %d updated stories", len(r.Updated))))
	} else {
		fmt.Fprintln(w, styles.Subtitle.Render("Nothing to save"))
	}
}
