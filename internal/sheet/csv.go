package sheet

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const utf8BOM = "\ufeff"

func readCSV(path string, comma rune) (*grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	bom := bytes.HasPrefix(data, []byte(utf8BOM))
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	if comma == 0 {
		comma = sniffComma(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	return &grid{rows: rows, comma: comma, bom: bom}, nil
}

// sniffComma picks ';' when the header line holds more semicolons than
// commas, as spreadsheet exports in comma-decimal locales do.
func sniffComma(data []byte) rune {
	header, _, _ := strings.Cut(string(data), "\n")
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// encodeCSV writes rows with comma, led by a byte order mark when bom is set.
func encodeCSV(rows [][]string, comma rune, bom bool) ([]byte, error) {
	var buf bytes.Buffer
	if bom {
		buf.WriteString(utf8BOM)
	}
	w := csv.NewWriter(&buf)
	w.Comma = comma
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
