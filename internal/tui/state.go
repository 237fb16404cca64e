package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/sant0-9/storyprompt/internal/config"
	"github.com/sant0-9/storyprompt/internal/interchange"
	"github.com/sant0-9/storyprompt/internal/prompts"
	"github.com/sant0-9/storyprompt/internal/record"
)

// Deps is what the picker needs from the command that starts it.
type Deps struct {
	Table    *record.Table
	Renderer *prompts.Renderer
	Service  *interchange.Service
	Columns  config.Columns
	// Source is shown in the header.
	Source string
}

type state struct {
	deps Deps

	// Selection, keyed by story id
	selected map[string]bool

	// Widgets
	stories table.Model
	input   textinput.Model
	typing  bool
	preview viewport.Model

	// Last rendered prompt
	rendered string

	// Markdown renderer for the preview, rebuilt on resize
	markdown *glamour.TermRenderer
	mdStyle  string
	mdWidth  int

	// Result
	output *interchange.Output
	saving bool
	err    error

	// One-line feedback under the table
	status string
}

func newState(deps Deps) *state {
	input := textinput.New()
	input.Placeholder = "HU001, HU002 ..."
	input.CharLimit = 500
	input.Width = 60
	input.Prompt = "IDs> "

	stories := table.New(
		table.WithColumns(storyColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	stories.SetStyles(tableStyles())

	s := &state{
		deps:     deps,
		selected: make(map[string]bool),
		stories:  stories,
		input:    input,
		preview:  viewport.New(80, 20),
		mdStyle:  markdownStyle(),
	}
	s.resizeMarkdown(s.preview.Width)
	s.refreshRows()
	return s
}

// selectedIDs returns the selection in table order.
func (s *state) selectedIDs() []string {
	var ids []string
	for _, id := range s.deps.Table.IDs() {
		if s.selected[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *state) refreshRows() {
	t := s.deps.Table
	col := s.deps.Columns
	rows := make([]table.Row, 0, t.Len())
	seen := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		id := t.ID(i)
		// Duplicates after the first are never selectable.
		if seen[id] {
			continue
		}
		seen[id] = true

		r := t.At(i)
		mark := "[ ]"
		if s.selected[id] {
			mark = "[x]"
		}
		rows = append(rows, table.Row{
			mark,
			id,
			r.Get(col.LineOfBusiness),
			r.Get(col.Release),
			r.Get(col.Title),
		})
	}
	s.stories.SetRows(rows)
}

// currentID is the id under the table cursor, or "" for an empty table.
func (s *state) currentID() string {
	row := s.stories.SelectedRow()
	if len(row) < 2 {
		return ""
	}
	return row[1]
}
