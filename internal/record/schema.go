package record

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidSchema is returned when a header cannot be turned into a schema.
var ErrInvalidSchema = errors.New("invalid schema")

// column is a named column and its position in the source header row.
type column struct {
	Name  string
	Index int
}

// Schema is the set of field names of a table, resolved once from the
// source header. Blank header cells are skipped and a repeated name keeps
// its first column. Runs of whitespace in a name, line breaks included,
// collapse to one space so every name fits on one encoded line.
type Schema struct {
	columns []column
	byName  map[string]int
	idField string
}

// NewSchema resolves header into a schema whose identifier field is idField.
func NewSchema(header []string, idField string) (*Schema, error) {
	idField = normalize(idField)
	if idField == "" {
		return nil, errors.Wrap(ErrInvalidSchema, "identifier field name is empty")
	}

	s := &Schema{
		byName:  make(map[string]int, len(header)),
		idField: idField,
	}
	for i, raw := range header {
		name := normalize(raw)
		if name == "" {
			continue
		}
		if strings.Contains(name, Separator) {
			return nil, errors.Wrapf(ErrInvalidSchema, "column %d %q contains the field separator %q", i+1, name, Separator)
		}
		if _, dup := s.byName[name]; dup {
			continue
		}
		s.byName[name] = len(s.columns)
		s.columns = append(s.columns, column{Name: name, Index: i})
	}

	if _, ok := s.byName[idField]; !ok {
		return nil, errors.Wrapf(ErrInvalidSchema, "identifier column %q not found in header", idField)
	}
	return s, nil
}

// normalize collapses whitespace runs in a header name.
func normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// IDField returns the name of the identifier field.
func (s *Schema) IDField() string { return s.idField }

// Len returns the number of named columns.
func (s *Schema) Len() int { return len(s.columns) }

// Names returns the field names in header order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.Name
	}
	return out
}

// Has reports whether name is a field of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[normalize(name)]
	return ok
}

// Index returns the source header position of name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.byName[normalize(name)]
	if !ok {
		return 0, false
	}
	return s.columns[i].Index, true
}

// Row builds a record from a source row laid out like the header.
// Cells are trimmed; short rows yield empty values.
func (s *Schema) Row(cells []string) *Record {
	r := &Record{}
	for _, c := range s.columns {
		var v string
		if c.Index < len(cells) {
			v = strings.TrimSpace(cells[c.Index])
		}
		r.Set(c.Name, v)
	}
	return r
}
