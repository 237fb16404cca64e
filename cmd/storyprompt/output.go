package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sant0-9/storyprompt/internal/selector"
	"github.com/sant0-9/storyprompt/internal/tui/styles"
)

const rule = "=================================================="

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, styles.Title.Render(title))
	fmt.Fprintln(w, styles.Subtitle.Render(rule))
}

func errorLine(err error) string {
	return styles.Error.Render("Error: ") + err.Error()
}

// printSelection reports how many of the requested ids were found.
func printSelection(w io.Writer, sel *selector.Result) {
	fmt.Fprintf(w, "Requested: %s\n", strings.Join(sel.Requested, ", "))
	fmt.Fprintln(w, styles.Success.Render(
		fmt.Sprintf("Found %d of %d stories", sel.Matched.Len(), len(sel.Requested))))
	if sel.Partial() {
		fmt.Fprintln(w, styles.Warn.Render("Not found: "+strings.Join(sel.Missing, ", ")))
	}
}

func nextSteps(w io.Writer, path string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render("Next steps"))
	fmt.Fprintf(w, "  1. Open %s\n", path)
	fmt.Fprintln(w, "  2. Copy all of its content")
	fmt.Fprintln(w, "  3. Paste it into Microsoft 365 Copilot")
	fmt.Fprintln(w, "  4. Save the answer and run: storyprompt import <answer file>")
}
