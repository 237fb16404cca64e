package document

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sant0-9/storyprompt/internal/record"
)

// ErrMalformedBlock marks a block that carries no identifier.
var ErrMalformedBlock = errors.New("malformed block")

// BlockError reports a block that was skipped while decoding a document.
// Index is the 1-based position of the block in the document.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// DecodeAll splits text and decodes every block. Blocks lacking a non-empty
// idField are skipped and returned as errors; the rest are returned in
// document order.
func DecodeAll(text, idField string) ([]*record.Record, []*BlockError) {
	var (
		records []*record.Record
		skipped []*BlockError
	)
	for i, raw := range Split(text) {
		r := record.Decode(raw)
		if r.Get(idField) == "" {
			skipped = append(skipped, &BlockError{
				Index: i + 1,
				Err:   errors.Wrapf(ErrMalformedBlock, "no %q field", idField),
			})
			continue
		}
		records = append(records, r)
	}
	return records, skipped
}
