package interchange

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sant0-9/storyprompt/internal/batch"
	"github.com/sant0-9/storyprompt/internal/prompts"
	"github.com/sant0-9/storyprompt/internal/record"
	"github.com/sant0-9/storyprompt/internal/selector"
)

// Part is one prompt file of a batched run.
type Part struct {
	Path    string
	Content string
	Stories []string
}

// PromptBatches is Prompt for chats with an input limit: the selected
// stories are split into prompts of at most maxChars characters, written
// as <prefix>_<timestamp>_<i>of<n>.txt. A single batch keeps the plain
// Prompt name. One story larger than maxChars still gets its own file.
func (s *Service) PromptBatches(t *record.Table, ids []string, r *prompts.Renderer, maxChars int) (*selector.Result, []Part, error) {
	sel, err := s.selectIDs(t, ids)
	if err != nil {
		return sel, nil, err
	}

	batches, err := batch.Split(sel.Matched, maxChars, func(sub *record.Table) (int, error) {
		text, err := r.Render(sub)
		return batch.Chars(text), err
	})
	if err != nil {
		return sel, nil, err
	}

	stamp := s.Writer.Stamp()
	parts := make([]Part, 0, len(batches))
	for _, b := range batches {
		content, err := r.Render(b.Table)
		if err != nil {
			return sel, parts, err
		}
		if b.Size > maxChars && maxChars > 0 {
			s.Log.Warn("story exceeds prompt limit",
				zap.Strings("ids", b.Table.IDs()),
				zap.Int("chars", b.Size),
				zap.Int("limit", maxChars))
		}

		name := s.Writer.Name(s.PromptPrefix, "txt")
		if len(batches) > 1 {
			name = fmt.Sprintf("%s_%s_%dof%d.txt", s.PromptPrefix, stamp, b.Index, len(batches))
		}
		path, err := s.Writer.WriteFile(name, content)
		if err != nil {
			return sel, parts, err
		}
		parts = append(parts, Part{Path: path, Content: content, Stories: b.Table.IDs()})
	}
	s.Log.Info("prompt split", zap.Int("parts", len(parts)), zap.Int("limit", maxChars))
	return sel, parts, nil
}
