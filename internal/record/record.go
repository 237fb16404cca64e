// Package record holds the flat string records read from a story sheet and
// the line codec used to move them in and out of free text.
package record

// Field is a single named value of a record.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered mapping from field name to value.
// The zero value is an empty record ready to use.
type Record struct {
	names  []string
	values map[string]string
}

// New builds a record from fields in the given order.
// A repeated name keeps its first position and takes the last value.
func New(fields ...Field) *Record {
	r := &Record{}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set assigns value to name, appending name if it is new.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns the value for name, or "" when the field is absent.
func (r *Record) Get(name string) string {
	if r == nil {
		return ""
	}
	return r.values[name]
}

// Lookup reports whether name is present and returns its value.
func (r *Record) Lookup(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[name]
	return v, ok
}

// Names returns the field names in insertion order.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Fields returns the fields in insertion order.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	out := make([]Field, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, Field{Name: n, Value: r.values[n]})
	}
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Map returns the fields as a plain map. Order is lost.
func (r *Record) Map() map[string]string {
	out := make(map[string]string, r.Len())
	if r == nil {
		return out
	}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// NonEmpty returns a copy of r without its empty fields.
func (r *Record) NonEmpty() *Record {
	out := &Record{}
	for _, f := range r.Fields() {
		if f.Value != "" {
			out.Set(f.Name, f.Value)
		}
	}
	return out
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	return New(r.Fields()...)
}
