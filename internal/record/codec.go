package record

import "strings"

// Separator splits a field name from its value on an encoded line.
// Three colons keep single colons in free text from being mistaken for it.
const Separator = ":::"

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

// Encode renders the non-empty fields of r named in order as
// "name::: value" lines. Fields not named in order are dropped, so order
// must be the full schema for a lossless round trip.
func Encode(r *Record, order []string) string {
	var b strings.Builder
	for _, name := range order {
		v := r.Get(name)
		if v == "" {
			continue
		}
		b.WriteString(name)
		b.WriteString(Separator)
		b.WriteByte(' ')
		b.WriteString(escaper.Replace(v))
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses "name::: value" lines back into a record. Lines without the
// separator, or with nothing before it, are skipped. When a name repeats the
// later line wins.
func Decode(text string) *Record {
	r := &Record{}
	for _, line := range strings.Split(text, "\n") {
		name, value, ok := DecodeLine(line)
		if !ok {
			continue
		}
		r.Set(name, value)
	}
	return r
}

// DecodeLine splits one encoded line at the first separator.
func DecodeLine(line string) (name, value string, ok bool) {
	i := strings.Index(line, Separator)
	if i < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:i])
	if name == "" {
		return "", "", false
	}
	value = strings.TrimSpace(line[i+len(Separator):])
	return name, unescape(value), true
}

// unescape reverses escaper. A backslash before any other byte is kept, so
// only `\n`, `\r` and `\\` are ambiguous in hand-written values.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}
