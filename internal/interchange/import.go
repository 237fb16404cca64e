package interchange

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sant0-9/storyprompt/internal/document"
)

// Change lists the columns overwritten for one identifier.
type Change struct {
	ID      string
	Columns []string
}

// ImportReport summarises an import run.
type ImportReport struct {
	// Blocks is the number of decodable blocks found.
	Blocks int
	// Updated holds the records that changed at least one cell.
	Updated []Change
	// Unchanged lists identifiers found whose values already matched.
	Unchanged []string
	// Unmatched lists identifiers with no destination row.
	Unmatched []string
	// Malformed holds blocks skipped for lacking an identifier.
	Malformed []*document.BlockError
	// UnknownColumns lists fields with no destination header.
	UnknownColumns []string
	// Saved is true when the destination was written back.
	Saved bool
}

// Import applies every block of text to target, then saves target once if
// anything changed. Unmatched identifiers and malformed blocks are reported
// and skipped.
func (s *Service) Import(text string, target Target) (*ImportReport, error) {
	recs, malformed := document.DecodeAll(text, target.Schema().IDField())
	report := &ImportReport{Blocks: len(recs), Malformed: malformed}
	for _, m := range malformed {
		s.Log.Warn("skipping block", zap.Int("block", m.Index), zap.Error(m.Err))
	}

	unknown := make(map[string]bool)
	for _, r := range recs {
		res, err := target.Apply(r)
		if err != nil {
			return report, err
		}
		for _, name := range res.Unknown {
			if !unknown[name] {
				unknown[name] = true
				report.UnknownColumns = append(report.UnknownColumns, name)
			}
		}
		switch {
		case !res.Found:
			s.Log.Warn("story not found in destination", zap.String("id", res.ID))
			report.Unmatched = append(report.Unmatched, res.ID)
		case len(res.Changed) == 0:
			report.Unchanged = append(report.Unchanged, res.ID)
		default:
			s.Log.Debug("story updated", zap.String("id", res.ID), zap.Strings("columns", res.Changed))
			report.Updated = append(report.Updated, Change{ID: res.ID, Columns: res.Changed})
		}
	}
	if len(report.UnknownColumns) > 0 {
		s.Log.Warn("fields without destination column", zap.Strings("fields", report.UnknownColumns))
	}

	if !target.Dirty() {
		return report, nil
	}
	if err := target.Save(); err != nil {
		return report, errors.Wrap(err, "could not save destination")
	}
	report.Saved = true
	return report, nil
}
