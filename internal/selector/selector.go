// Package selector filters a story table down to requested identifiers.
package selector

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sant0-9/storyprompt/internal/record"
)

// ErrNoMatches is returned when none of the requested identifiers exist.
var ErrNoMatches = errors.New("no matching records")

// Result is the outcome of a selection.
type Result struct {
	// Matched keeps the source table order, one record per identifier.
	Matched *record.Table
	// Missing lists requested identifiers without a record, in request
	// order and with repeats kept.
	Missing []string
	// Requested is the trimmed, non-empty request list.
	Requested []string
}

// Partial reports whether some requested identifiers were not found.
func (r *Result) Partial() bool {
	return len(r.Missing) > 0
}

// Select returns the records of t whose identifier equals one of ids.
// Identifiers are trimmed and compared as exact strings. When nothing
// matches, the result is still returned alongside ErrNoMatches so callers
// can report what was missing.
func Select(t *record.Table, ids []string) (*Result, error) {
	res := &Result{}
	want := make(map[string]bool, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		res.Requested = append(res.Requested, id)
		want[id] = true
	}

	var positions []int
	found := make(map[string]bool, len(want))
	for i := 0; i < t.Len(); i++ {
		id := t.ID(i)
		if !want[id] || found[id] {
			continue
		}
		found[id] = true
		positions = append(positions, i)
	}

	for _, id := range res.Requested {
		if !found[id] {
			res.Missing = append(res.Missing, id)
		}
	}

	res.Matched = t.Subset(positions)
	if len(positions) == 0 {
		return res, errors.Wrapf(ErrNoMatches, "requested %d identifiers", len(res.Requested))
	}
	return res, nil
}

// All selects every record of t.
func All(t *record.Table) (*Result, error) {
	return Select(t, t.IDs())
}

// ParseIDs splits a free-form identifier list such as "HU001, HU002".
// Commas, semicolons and whitespace all separate entries.
func ParseIDs(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
}
