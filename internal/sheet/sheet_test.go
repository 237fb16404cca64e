package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var storyRows = [][]string{
	{"ID_US", "Titulo", "Ramo", "Release", "Descripción de la HdU - IA"},
	{"HU001", "Cotizar póliza", "Vida", "1.2.1", "El suscriptor cotiza"},
	{"007", "Emitir", "Salud", "1.2.1"},
	{},
	{"", "Sin identificador", "Vida"},
	{"HU001", "Duplicada", "Vida"},
}

func writeWorkbook(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for r, row := range rows {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func writeCSV(t *testing.T, path string, rows [][]string, comma rune) {
	t.Helper()
	data, err := encodeCSV(rows, comma, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HU Release 1.2.1.xlsx")
	writeWorkbook(t, path, "USER STORIES", storyRows)

	tbl, report, err := Load(path, Options{
		Sheet:    "USER STORIES",
		IDColumn: "ID_US",
		Expect:   []string{"Titulo", "Proceso"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"HU001", "007", "HU001"}, tbl.IDs())
	assert.Equal(t, "Cotizar póliza", tbl.At(0).Get("Titulo"))
	assert.Equal(t, "", tbl.At(1).Get("Descripción de la HdU - IA"))
	assert.Equal(t, "", tbl.At(1).Get("Proceso"), "absent columns read as empty")

	assert.Equal(t, "USER STORIES", report.Sheet)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 1, report.BlankRows)
	assert.Equal(t, []int{5}, report.MissingID)
	assert.Equal(t, []string{"HU001"}, report.Duplicates)
	assert.Equal(t, []string{"Proceso"}, report.MissingColumns)
}

func TestLoadWorkbookFirstSheetByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.xlsx")
	writeWorkbook(t, path, "Backlog", storyRows[:2])

	_, report, err := Load(path, Options{IDColumn: "ID_US"})
	require.NoError(t, err)
	assert.Equal(t, "Backlog", report.Sheet)
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	for _, comma := range []rune{',', ';'} {
		path := filepath.Join(dir, "stories"+string(comma)+".csv")
		writeCSV(t, path, storyRows, comma)

		tbl, report, err := Load(path, Options{IDColumn: "ID_US"})
		require.NoError(t, err, "comma %q", comma)
		assert.Equal(t, []string{"HU001", "007", "HU001"}, tbl.IDs())
		assert.Equal(t, "Vida", tbl.At(0).Get("Ramo"))
		// blank lines vanish in CSV, so rows shift up by one
		assert.Equal(t, []int{4}, report.MissingID)
	}
}

func TestLoadCSVWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffID_US,Titulo\nHU1,x\n"), 0o644))

	tbl, _, err := Load(path, Options{IDColumn: "ID_US"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HU1"}, tbl.IDs())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "book.xlsx")
	writeWorkbook(t, book, "USER STORIES", storyRows)
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	tests := []struct {
		name string
		path string
		opts Options
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.xlsx"), Options{IDColumn: "ID_US"}, ErrSourceNotFound},
		{"missing sheet", book, Options{Sheet: "OTHER", IDColumn: "ID_US"}, ErrSheetNotFound},
		{"unsupported", filepath.Join(dir, "book.ods"), Options{IDColumn: "ID_US"}, ErrUnsupportedFormat},
		{"empty source", empty, Options{IDColumn: "ID_US"}, ErrEmptySource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(tt.path, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), filepath.Base(tt.path))
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "workbook", FormatWorkbook.String())
	assert.Equal(t, "csv", FormatCSV.String())
}
