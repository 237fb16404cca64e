// Package sheet loads story tables from workbooks and CSV files and writes
// imported values back into them.
package sheet

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sant0-9/storyprompt/internal/record"
)

var (
	// ErrSourceNotFound is returned when the backing file does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrSheetNotFound is returned when a workbook lacks the requested sheet.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedFormat is returned for file extensions we cannot read.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEmptySource is returned when the source has no header row.
	ErrEmptySource = errors.New("source has no header row")
)

// Format is the storage format of a source file.
type Format int

const (
	FormatWorkbook Format = iota
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatWorkbook:
		return "workbook"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatWorkbook, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// Options selects what to read from a source.
type Options struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	// Ignored for CSV.
	Sheet string
	// IDColumn is the header of the identifier column.
	IDColumn string
	// Expect lists headers the caller relies on. Absent ones are reported
	// but still read as empty values.
	Expect []string
	// Comma is the CSV delimiter. Zero sniffs ',' or ';' from the header.
	Comma rune
}

// LoadReport describes what Load skipped or could not find.
type LoadReport struct {
	Path  string
	Sheet string
	// Rows is the number of records loaded.
	Rows int
	// BlankRows counts fully empty rows that were skipped.
	BlankRows int
	// MissingID lists 1-based source rows that had data but no identifier.
	MissingID []int
	// Duplicates lists identifiers found more than once.
	Duplicates []string
	// MissingColumns lists expected headers absent from the source.
	MissingColumns []string
}

// Load reads a table from path. The first row is the header.
func Load(path string, opts Options) (*record.Table, *LoadReport, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}
	if err := checkExists(path); err != nil {
		return nil, nil, err
	}

	g, err := readGrid(path, format, opts)
	if err != nil {
		return nil, nil, err
	}
	return build(path, g, opts)
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrSourceNotFound, "%s", path)
		}
		return errors.Wrapf(err, "could not stat %s", path)
	}
	return nil
}

func readGrid(path string, format Format, opts Options) (*grid, error) {
	if format == FormatCSV {
		return readCSV(path, opts.Comma)
	}
	return readWorkbook(path, opts.Sheet)
}

// grid is the raw cell content of one sheet.
type grid struct {
	sheet string
	rows  [][]string
	comma rune
	// bom is set when the CSV file started with a UTF-8 byte order mark.
	bom bool
}

func build(path string, g *grid, opts Options) (*record.Table, *LoadReport, error) {
	if len(g.rows) == 0 {
		return nil, nil, errors.Wrapf(ErrEmptySource, "%s", path)
	}

	schema, err := record.NewSchema(g.rows[0], opts.IDColumn)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s", path)
	}

	report := &LoadReport{Path: path, Sheet: g.sheet}
	for _, name := range opts.Expect {
		if !schema.Has(name) {
			report.MissingColumns = append(report.MissingColumns, name)
		}
	}

	var records []*record.Record
	for i, cells := range g.rows[1:] {
		if blank(cells) {
			report.BlankRows++
			continue
		}
		r := schema.Row(cells)
		if r.Get(schema.IDField()) == "" {
			report.MissingID = append(report.MissingID, i+2)
			continue
		}
		records = append(records, r)
	}

	t := record.NewTable(schema, records)
	report.Rows = t.Len()
	report.Duplicates = t.Duplicates()
	return t, report, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
