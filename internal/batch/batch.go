// Package batch splits a story selection into prompts that each fit a
// size limit.
package batch

import (
	"unicode/utf8"

	"github.com/sant0-9/storyprompt/internal/record"
)

// Sizer reports the size of whatever is built from t, usually the length
// of its rendered prompt.
type Sizer func(t *record.Table) (int, error)

// Batch is a consecutive run of stories.
type Batch struct {
	// Index is 1-based.
	Index int
	Table *record.Table
	Size  int
}

// Split packs the rows of t, in order, into batches whose size stays within
// limit. A row that alone exceeds it gets a batch of its own. A limit of zero
// or less yields a single batch.
func Split(t *record.Table, limit int, size Sizer) ([]Batch, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	if limit <= 0 {
		n, err := size(t)
		if err != nil {
			return nil, err
		}
		return []Batch{{Index: 1, Table: t, Size: n}}, nil
	}

	var (
		batches []Batch
		current []int
		curSize int
	)
	flush := func() {
		batches = append(batches, Batch{
			Index: len(batches) + 1,
			Table: t.Subset(current),
			Size:  curSize,
		})
		current = nil
	}

	for i := 0; i < t.Len(); i++ {
		candidate := append(append([]int(nil), current...), i)
		n, err := size(t.Subset(candidate))
		if err != nil {
			return nil, err
		}

		// Check if adding this row would exceed limit
		if n > limit && len(current) > 0 {
			flush()
			candidate = []int{i}
			if n, err = size(t.Subset(candidate)); err != nil {
				return nil, err
			}
		}
		current, curSize = candidate, n
	}

	// Don't forget the last batch
	flush()
	return batches, nil
}

// Chars counts runes, the unit chat input limits are given in.
func Chars(text string) int {
	return utf8.RuneCountInString(text)
}

// EstimateTokens returns approximate token count (~4 chars per token)
func EstimateTokens(text string) int {
	return (Chars(text) + 3) / 4
}
