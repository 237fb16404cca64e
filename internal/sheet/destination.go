package sheet

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/sant0-9/storyprompt/internal/record"
	"github.com/sant0-9/storyprompt/internal/writer"
)

// ApplyResult describes what applying one record changed.
type ApplyResult struct {
	ID string
	// Found is false when no row carries the identifier.
	Found bool
	// Changed lists the columns whose value was overwritten.
	Changed []string
	// Unknown lists fields with no matching column header.
	Unknown []string
}

// Destination is a source file opened for in-place updates. Rows are found
// by identifier and columns by header name, both resolved once at Open.
type Destination struct {
	path   string
	format Format
	sheet  string
	schema *record.Schema
	rows   [][]string
	rowOf  map[string]int
	book   *excelize.File
	comma  rune
	bom    bool
	dirty  bool
}

// Open loads path for updating. Close must be called when done.
func Open(path string, opts Options) (*Destination, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if err := checkExists(path); err != nil {
		return nil, err
	}

	d := &Destination{path: path, format: format}
	switch format {
	case FormatWorkbook:
		if err := d.openWorkbook(opts.Sheet); err != nil {
			return nil, err
		}
	case FormatCSV:
		g, err := readCSV(path, opts.Comma)
		if err != nil {
			return nil, err
		}
		d.rows, d.comma, d.bom = g.rows, g.comma, g.bom
	}

	if len(d.rows) == 0 {
		d.Close()
		return nil, errors.Wrapf(ErrEmptySource, "%s", path)
	}
	d.schema, err = record.NewSchema(d.rows[0], opts.IDColumn)
	if err != nil {
		d.Close()
		return nil, errors.Wrapf(err, "%s", path)
	}
	d.indexRows()
	return d, nil
}

func (d *Destination) openWorkbook(sheet string) error {
	f, err := excelize.OpenFile(d.path)
	if err != nil {
		return errors.Wrapf(err, "could not open workbook %s", d.path)
	}
	name, err := resolveSheet(f, sheet)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", d.path)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "could not read sheet %q of %s", name, d.path)
	}
	d.book, d.sheet, d.rows = f, name, rows
	return nil
}

func (d *Destination) indexRows() {
	idCol, _ := d.schema.Index(d.schema.IDField())
	d.rowOf = make(map[string]int, len(d.rows))
	for i := 1; i < len(d.rows); i++ {
		id := strings.TrimSpace(cell(d.rows[i], idCol))
		if id == "" {
			continue
		}
		if _, ok := d.rowOf[id]; !ok {
			d.rowOf[id] = i
		}
	}
}

// Schema returns the destination header schema.
func (d *Destination) Schema() *record.Schema { return d.schema }

// Sheet returns the worksheet being updated, empty for CSV.
func (d *Destination) Sheet() string { return d.sheet }

// Path returns the destination file.
func (d *Destination) Path() string { return d.path }

// Apply overwrites the row identified by r with r's other fields. Empty
// values never clear a cell. The identifier column is never written.
func (d *Destination) Apply(r *record.Record) (ApplyResult, error) {
	idField := d.schema.IDField()
	res := ApplyResult{ID: r.Get(idField)}

	row, ok := d.rowOf[res.ID]
	if !ok {
		return res, nil
	}
	res.Found = true

	for _, f := range r.Fields() {
		if f.Name == idField {
			continue
		}
		col, ok := d.schema.Index(f.Name)
		if !ok {
			res.Unknown = append(res.Unknown, f.Name)
			continue
		}
		if f.Value == "" || strings.TrimSpace(cell(d.rows[row], col)) == f.Value {
			continue
		}
		if err := d.set(row, col, f.Value); err != nil {
			return res, errors.Wrapf(err, "could not update %s of %s", f.Name, res.ID)
		}
		res.Changed = append(res.Changed, f.Name)
	}
	return res, nil
}

func (d *Destination) set(row, col int, value string) error {
	for len(d.rows[row]) <= col {
		d.rows[row] = append(d.rows[row], "")
	}
	d.rows[row][col] = value
	d.dirty = true

	if d.book == nil {
		return nil
	}
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	return d.book.SetCellValue(d.sheet, name, value)
}

// Dirty reports whether Apply changed anything since Open or Save.
func (d *Destination) Dirty() bool { return d.dirty }

// Save writes pending changes back to the file, replacing it atomically.
func (d *Destination) Save() error {
	if !d.dirty {
		return nil
	}

	var data []byte
	switch d.format {
	case FormatWorkbook:
		buf, err := d.book.WriteToBuffer()
		if err != nil {
			return errors.Wrapf(err, "could not encode workbook %s", d.path)
		}
		data = buf.Bytes()
	case FormatCSV:
		var err error
		data, err = encodeCSV(d.rows, d.comma, d.bom)
		if err != nil {
			return errors.Wrapf(err, "could not encode %s", d.path)
		}
	}

	perm := os.FileMode(0o644)
	if fi, err := os.Stat(d.path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := writer.WriteAtomic(d.path, data, perm); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// Close releases the workbook. It is safe to call more than once.
func (d *Destination) Close() error {
	if d.book == nil {
		return nil
	}
	err := d.book.Close()
	d.book = nil
	return err
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
