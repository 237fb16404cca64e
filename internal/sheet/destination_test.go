package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/storyprompt/internal/record"
)

func answer(fields ...string) *record.Record {
	r := &record.Record{}
	for i := 0; i+1 < len(fields); i += 2 {
		r.Set(fields[i], fields[i+1])
	}
	return r
}

func TestDestinationWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeWorkbook(t, path, "USER STORIES", storyRows)

	d, err := Open(path, Options{Sheet: "USER STORIES", IDColumn: "ID_US"})
	require.NoError(t, err)
	defer d.Close()

	res, err := d.Apply(answer(
		"ID_US", "HU001",
		"Titulo", "Cotizar póliza de vida",
		"Ramo", "Vida",
		"Épica", "Adaptaciones NPVD para R33",
	))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, []string{"Titulo"}, res.Changed)
	assert.Equal(t, []string{"Épica"}, res.Unknown)

	res, err = d.Apply(answer("ID_US", "007", "Descripción de la HdU - IA", "Nueva"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Descripción de la HdU - IA"}, res.Changed, "short rows grow")

	res, err = d.Apply(answer("ID_US", "HU404", "Titulo", "x"))
	require.NoError(t, err)
	assert.False(t, res.Found)

	assert.True(t, d.Dirty())
	require.NoError(t, d.Save())
	assert.False(t, d.Dirty())
	require.NoError(t, d.Close())

	tbl, _, err := Load(path, Options{Sheet: "USER STORIES", IDColumn: "ID_US"})
	require.NoError(t, err)
	assert.Equal(t, "Cotizar póliza de vida", tbl.At(0).Get("Titulo"))
	assert.Equal(t, "Nueva", tbl.At(1).Get("Descripción de la HdU - IA"))
	assert.Equal(t, "Duplicada", tbl.At(2).Get("Titulo"), "only the first duplicate row is updated")
}

func TestDestinationCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.csv")
	writeCSV(t, path, storyRows, ';')

	d, err := Open(path, Options{IDColumn: "ID_US"})
	require.NoError(t, err)
	defer d.Close()

	res, err := d.Apply(answer("ID_US", "007", "Release", "2.0", "Titulo", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Release"}, res.Changed, "empty values never clear cells")
	require.NoError(t, d.Save())

	tbl, _, err := Load(path, Options{IDColumn: "ID_US"})
	require.NoError(t, err)
	assert.Equal(t, "2.0", tbl.At(1).Get("Release"))
	assert.Equal(t, "Emitir", tbl.At(1).Get("Titulo"))
}

func TestDestinationCSVKeepsByteOrderMark(t *testing.T) {
	tests := []struct {
		name  string
		bom   bool
		marks int
	}{
		{"with mark", true, 1},
		{"without mark", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stories.csv")
			data, err := encodeCSV(storyRows, ',', tt.bom)
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			d, err := Open(path, Options{IDColumn: "ID_US"})
			require.NoError(t, err)
			res, err := d.Apply(answer("ID_US", "HU001", "Titulo", "Cotizar seguro"))
			require.NoError(t, err)
			require.Equal(t, []string{"Titulo"}, res.Changed)
			require.NoError(t, d.Save())
			require.NoError(t, d.Close())

			saved, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.bom, strings.HasPrefix(string(saved), utf8BOM))
			assert.Equal(t, tt.marks, strings.Count(string(saved), utf8BOM))
			assert.Contains(t, string(saved), "Cotizar seguro")
		})
	}
}

func TestDestinationSaveWithoutChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.csv")
	writeCSV(t, path, storyRows, ',')

	d, err := Open(path, Options{IDColumn: "ID_US"})
	require.NoError(t, err)
	assert.NoError(t, d.Save())
	assert.NoError(t, d.Close())
	assert.NoError(t, d.Close())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"), Options{IDColumn: "ID_US"})
	assert.ErrorIs(t, err, ErrSourceNotFound)

	path := filepath.Join(t.TempDir(), "stories.csv")
	writeCSV(t, path, storyRows, ',')
	_, err = Open(path, Options{IDColumn: "NOPE"})
	assert.ErrorIs(t, err, record.ErrInvalidSchema)
}
