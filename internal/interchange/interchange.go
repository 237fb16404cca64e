// Package interchange ties selection, rendering and the record document
// format into the exported operations: prompt, export and import.
package interchange

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sant0-9/storyprompt/internal/document"
	"github.com/sant0-9/storyprompt/internal/prompts"
	"github.com/sant0-9/storyprompt/internal/record"
	"github.com/sant0-9/storyprompt/internal/selector"
	"github.com/sant0-9/storyprompt/internal/sheet"
	"github.com/sant0-9/storyprompt/internal/writer"
)

// Target is a table that imported records are written into.
type Target interface {
	Schema() *record.Schema
	Apply(r *record.Record) (sheet.ApplyResult, error)
	// Dirty reports whether Apply left changes that Save would write.
	Dirty() bool
	Save() error
}

// Service runs the operations against an output directory.
type Service struct {
	Writer       *writer.Writer
	Log          *zap.Logger
	PromptPrefix string
	ExportPrefix string
}

// New creates a service. A nil logger discards logs.
func New(w *writer.Writer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Writer:       w,
		Log:          log,
		PromptPrefix: "prompt_copilot",
		ExportPrefix: "historias",
	}
}

// Output is the result of a prompt or export run.
type Output struct {
	Selection *selector.Result
	Path      string
	Content   string
}

// Prompt selects ids from t, renders them and writes a timestamped prompt
// file. Nothing is written when no identifier matches.
func (s *Service) Prompt(t *record.Table, ids []string, r *prompts.Renderer) (*Output, error) {
	sel, err := s.selectIDs(t, ids)
	if err != nil {
		return &Output{Selection: sel}, err
	}

	content, err := r.Render(sel.Matched)
	if err != nil {
		return &Output{Selection: sel}, err
	}
	return s.write(sel, s.PromptPrefix, content)
}

// Export writes the selected records, or every record when ids is empty,
// as an interchange document.
func (s *Service) Export(t *record.Table, ids []string) (*Output, error) {
	var (
		sel *selector.Result
		err error
	)
	if len(ids) == 0 {
		sel, err = selector.All(t)
		if err != nil {
			err = errors.Wrap(err, "table is empty")
		}
	} else {
		sel, err = s.selectIDs(t, ids)
	}
	if err != nil {
		return &Output{Selection: sel}, err
	}
	doc := document.NewBuilder().
		Text(exportPreamble(sel.Matched.Len())).
		Table(sel.Matched).
		String()
	return s.write(sel, s.ExportPrefix, doc)
}

// exportPreamble heads an exported document. Import ignores everything
// before the first banner.
func exportPreamble(n int) string {
	return fmt.Sprintf("Exported stories: %d. Edit the values after %q and import this file back.\n"+
		"Write a line break as \\n and a literal backslash as \\\\.\n\n", n, record.Separator)
}

func (s *Service) selectIDs(t *record.Table, ids []string) (*selector.Result, error) {
	sel, err := selector.Select(t, ids)
	if err != nil {
		s.Log.Error("no matching stories", zap.Strings("requested", sel.Requested))
		return sel, err
	}
	s.Log.Info("stories selected",
		zap.Int("found", sel.Matched.Len()),
		zap.Int("requested", len(sel.Requested)))
	if sel.Partial() {
		s.Log.Warn("stories not found", zap.Strings("ids", sel.Missing))
	}
	return sel, nil
}

func (s *Service) write(sel *selector.Result, prefix, content string) (*Output, error) {
	path, err := s.Writer.WriteTimestamped(prefix, "txt", content)
	if err != nil {
		return &Output{Selection: sel}, err
	}
	s.Log.Debug("file written", zap.String("path", path), zap.Int("bytes", len(content)))
	return &Output{Selection: sel, Path: path, Content: content}, nil
}
