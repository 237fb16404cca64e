package record

// Table is an ordered, read-only sequence of records sharing one schema.
type Table struct {
	schema     *Schema
	rows       []*Record
	first      map[string]int
	duplicates []string
}

// NewTable builds a table over records. Each record is copied and
// normalised to the schema: every schema field is present, in schema order,
// and fields outside the schema are dropped.
func NewTable(schema *Schema, records []*Record) *Table {
	rows := make([]*Record, 0, len(records))
	for _, r := range records {
		n := &Record{}
		for _, name := range schema.Names() {
			n.Set(name, r.Get(name))
		}
		rows = append(rows, n)
	}
	return newTable(schema, rows)
}

func newTable(schema *Schema, rows []*Record) *Table {
	t := &Table{
		schema: schema,
		rows:   rows,
		first:  make(map[string]int, len(rows)),
	}
	seen := make(map[string]bool)
	for i, r := range rows {
		id := r.Get(schema.idField)
		if _, ok := t.first[id]; ok {
			if !seen[id] {
				t.duplicates = append(t.duplicates, id)
				seen[id] = true
			}
			continue
		}
		t.first[id] = i
	}
	return t
}

// Schema returns the table schema.
func (t *Table) Schema() *Schema { return t.schema }

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// At returns a copy of the i-th record.
func (t *Table) At(i int) *Record {
	return t.rows[i].Clone()
}

// ID returns the identifier of the i-th record.
func (t *Table) ID(i int) string {
	return t.rows[i].Get(t.schema.idField)
}

// IDs returns every identifier in table order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.ID(i)
	}
	return out
}

// Find returns the position of the first record with identifier id.
func (t *Table) Find(id string) (int, bool) {
	i, ok := t.first[id]
	return i, ok
}

// Duplicates lists identifiers that occur more than once, in order of
// their second occurrence. Only the first row of each is reachable by Find.
func (t *Table) Duplicates() []string {
	out := make([]string, len(t.duplicates))
	copy(out, t.duplicates)
	return out
}

// Subset returns a view holding the records at the given positions, in the
// order given. Records are shared with t since neither table mutates them.
func (t *Table) Subset(positions []int) *Table {
	rows := make([]*Record, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, t.rows[p])
	}
	return newTable(t.schema, rows)
}
