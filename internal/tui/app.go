package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/sant0-9/storyprompt/internal/interchange"
	"github.com/sant0-9/storyprompt/internal/selector"
)

type view int

const (
	viewList view = iota
	viewPreview
	viewResult
	viewHelp
	viewError
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
}

func NewApp(deps Deps) *App {
	return &App{
		view:  viewList,
		state: newState(deps),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.WindowSize()
}

// Output is the last prompt written, or nil if none was saved.
func (a *App) Output() *interchange.Output {
	return a.state.output
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case promptSavedMsg:
		a.state.saving = false
		a.state.output = msg.output
		a.view = viewResult
		return a, nil

	case promptErrorMsg:
		a.state.saving = false
		a.state.err = msg.error
		a.view = viewError
		return a, nil
	}

	// Forward to the active widget
	var cmd tea.Cmd
	switch a.view {
	case viewList:
		if a.state.typing {
			a.state.input, cmd = a.state.input.Update(msg)
		} else {
			a.state.stories, cmd = a.state.stories.Update(msg)
		}
	case viewPreview:
		a.state.preview, cmd = a.state.preview.Update(msg)
	}
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.state.stories.SetColumns(storyColumns(width))
	a.state.stories.SetHeight(max(height-12, 3))
	a.state.input.Width = min(60, max(width-12, 10))
	a.state.preview.Width = max(width-4, 20)
	a.state.preview.Height = max(height-6, 3)
	a.state.resizeMarkdown(a.state.preview.Width)
}

// handleKey reports whether msg was consumed so it does not also reach
// the active widget.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit, true
	}
	if a.view == viewList && a.state.typing {
		return a.handleTypingKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if a.view != viewList {
			a.view = viewList
			return nil, true
		}
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true
	}

	// View-specific handling
	switch a.view {
	case viewList:
		return a.handleListKey(msg)
	case viewPreview:
		if key.Matches(msg, keys.Enter, keys.Save) {
			return a.save(), true
		}
	case viewResult, viewError, viewHelp:
		if key.Matches(msg, keys.Enter) {
			a.view = viewList
			return nil, true
		}
	}
	return nil, false
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state
	switch {
	case key.Matches(msg, keys.Toggle):
		id := s.currentID()
		if id == "" {
			return nil, true
		}
		s.selected[id] = !s.selected[id]
		if !s.selected[id] {
			delete(s.selected, id)
		}
		s.refreshRows()
		s.status = fmt.Sprintf("%d selected", len(s.selected))
		return nil, true

	case key.Matches(msg, keys.All):
		if len(s.selected) > 0 {
			s.selected = make(map[string]bool)
		} else {
			for _, id := range s.deps.Table.IDs() {
				s.selected[id] = true
			}
		}
		s.refreshRows()
		s.status = fmt.Sprintf("%d selected", len(s.selected))
		return nil, true

	case key.Matches(msg, keys.Type):
		s.typing = true
		s.input.Reset()
		return s.input.Focus(), true

	case key.Matches(msg, keys.Preview):
		a.openPreview()
		return nil, true

	case key.Matches(msg, keys.Enter, keys.Save):
		return a.save(), true
	}
	return nil, false
}

// handleTypingKey replaces the selection with the typed ids on enter.
func (a *App) handleTypingKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state
	switch msg.Type {
	case tea.KeyEsc:
		s.typing = false
		s.input.Blur()
		return nil, true

	case tea.KeyEnter:
		s.typing = false
		s.input.Blur()

		ids := selector.ParseIDs(s.input.Value())
		if len(ids) == 0 {
			s.status = "no ids typed"
			return nil, true
		}
		sel, err := selector.Select(s.deps.Table, ids)
		if err != nil {
			s.status = fmt.Sprintf("no story matches %s", strings.Join(sel.Requested, ", "))
			return nil, true
		}
		s.selected = make(map[string]bool)
		for _, id := range sel.Matched.IDs() {
			s.selected[id] = true
		}
		s.refreshRows()
		s.status = fmt.Sprintf("found %d of %d", sel.Matched.Len(), len(sel.Requested))
		if sel.Partial() {
			s.status += fmt.Sprintf(", missing %s", strings.Join(sel.Missing, ", "))
		}
		return nil, true
	}
	return nil, false
}

func (a *App) openPreview() {
	s := a.state
	ids := s.selectedIDs()
	if len(ids) == 0 {
		s.status = "select at least one story first"
		return
	}
	sel, err := selector.Select(s.deps.Table, ids)
	if err != nil {
		s.status = err.Error()
		return
	}
	text, err := s.deps.Renderer.Render(sel.Matched)
	if err != nil {
		s.err = errors.Wrap(err, "render prompt")
		a.view = viewError
		return
	}
	s.rendered = text
	s.preview.SetContent(s.renderMarkdown(text))
	s.preview.GotoTop()
	a.view = viewPreview
}

// save writes the prompt for the current selection off the update loop.
func (a *App) save() tea.Cmd {
	s := a.state
	if s.saving {
		return nil
	}
	ids := s.selectedIDs()
	if len(ids) == 0 {
		s.status = "select at least one story first"
		return nil
	}
	s.saving = true
	s.status = "saving..."

	svc, t, r := s.deps.Service, s.deps.Table, s.deps.Renderer
	return func() tea.Msg {
		out, err := svc.Prompt(t, ids, r)
		if err != nil {
			return promptErrorMsg{err}
		}
		return promptSavedMsg{out}
	}
}

type promptSavedMsg struct{ output *interchange.Output }
type promptErrorMsg struct{ error }

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewPreview:
		return a.renderPreview()
	case viewResult:
		return a.renderResult()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderList()
	}
}
