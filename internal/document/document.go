// Package document assembles records into the banner-separated interchange
// document and splits such documents back into encoded blocks.
package document

import (
	"fmt"
	"strings"

	"github.com/sant0-9/storyprompt/internal/record"
)

// Rule is the fixed-width token that opens and closes every banner line.
// It never appears at the start of an encoded field line, so splitting on it
// cannot be confused by field values.
const Rule = "=========="

// Label is the word between the rules of a banner.
const Label = "Historia"

// Block is one piece of a document.
type Block interface {
	render(b *strings.Builder)
}

// Text is free text emitted verbatim, typically a preamble.
type Text string

func (t Text) render(b *strings.Builder) {
	b.WriteString(string(t))
}

// Banner is the navigation line before each record. Seq is 1-based and only
// meant for humans; it is not stable across export and import.
type Banner struct {
	Seq int
}

func (bn Banner) render(b *strings.Builder) {
	b.WriteString(BannerLine(bn.Seq))
	b.WriteString("\n\n")
}

// RecordBlock is one encoded record followed by a blank line.
type RecordBlock struct {
	Record *record.Record
	Order  []string
}

func (rb RecordBlock) render(b *strings.Builder) {
	b.WriteString(record.Encode(rb.Record, rb.Order))
	b.WriteString("\n")
}

// BannerLine returns the banner text for sequence number n.
func BannerLine(n int) string {
	return fmt.Sprintf("%s %s %d %s", Rule, Label, n, Rule)
}

// Builder collects blocks and numbers the records it is given.
type Builder struct {
	blocks []Block
	seq    int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Text appends free text.
func (b *Builder) Text(s string) *Builder {
	b.blocks = append(b.blocks, Text(s))
	return b
}

// Add appends a banner and the record encoded in order.
func (b *Builder) Add(r *record.Record, order []string) *Builder {
	b.seq++
	b.blocks = append(b.blocks, Banner{Seq: b.seq}, RecordBlock{Record: r, Order: order})
	return b
}

// String renders the document.
func (b *Builder) String() string {
	return Render(b.blocks)
}

// Render joins blocks into document text.
func Render(blocks []Block) string {
	var sb strings.Builder
	for _, bl := range blocks {
		bl.render(&sb)
	}
	return sb.String()
}

// Table adds every record of t in table order using the full schema.
func (b *Builder) Table(t *record.Table) *Builder {
	order := t.Schema().Names()
	for i := 0; i < t.Len(); i++ {
		b.Add(t.At(i), order)
	}
	return b
}

// Serialize renders every record of t in table order using the full schema.
func Serialize(t *record.Table) string {
	return NewBuilder().Table(t).String()
}

// Split cuts text at every banner line and returns one raw fragment per
// banner, each still holding its banner line. Text before the first banner
// is discarded.
func Split(text string) []string {
	var (
		blocks  []string
		current strings.Builder
		open    bool
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		if isBanner(line) {
			if open {
				blocks = append(blocks, current.String())
				current.Reset()
			}
			open = true
		}
		if open {
			current.WriteString(line)
		}
	}
	if open {
		blocks = append(blocks, current.String())
	}
	return blocks
}

// isBanner reports whether line opens with the rule, allowing the leading
// markdown decoration assistants tend to add.
func isBanner(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t#*>"), Rule)
}
