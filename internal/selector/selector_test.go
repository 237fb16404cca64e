package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/storyprompt/internal/record"
)

func table(t *testing.T, ids ...string) *record.Table {
	t.Helper()
	s, err := record.NewSchema([]string{"id", "title"}, "id")
	require.NoError(t, err)
	var recs []*record.Record
	for i, id := range ids {
		recs = append(recs, record.New(
			record.Field{Name: "id", Value: id},
			record.Field{Name: "title", Value: string(rune('a' + i))},
		))
	}
	return record.NewTable(s, recs)
}

func TestSelectExample(t *testing.T) {
	s, err := record.NewSchema([]string{"id", "title"}, "id")
	require.NoError(t, err)
	tbl := record.NewTable(s, []*record.Record{
		record.New(record.Field{Name: "id", Value: "A1"}, record.Field{Name: "title", Value: "x"}),
		record.New(record.Field{Name: "id", Value: "A2"}, record.Field{Name: "title", Value: "y"}),
	})

	res, err := Select(tbl, ParseIDs("A2, A3"))
	require.NoError(t, err)

	require.Equal(t, 1, res.Matched.Len())
	assert.Equal(t, map[string]string{"id": "A2", "title": "y"}, res.Matched.At(0).Map())
	assert.Equal(t, []string{"A3"}, res.Missing)
	assert.True(t, res.Partial())
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		table       []string
		ids         []string
		wantMatched []string
		wantMissing []string
		wantErr     bool
	}{
		{
			name:        "keeps table order",
			table:       []string{"A1", "A2", "A3"},
			ids:         []string{"A3", "A1"},
			wantMatched: []string{"A1", "A3"},
		},
		{
			name:        "trims requested ids",
			table:       []string{"A1", "A2"},
			ids:         []string{"  A2\t"},
			wantMatched: []string{"A2"},
		},
		{
			name:        "string comparison only",
			table:       []string{"007", "7"},
			ids:         []string{"7", "07"},
			wantMatched: []string{"7"},
			wantMissing: []string{"07"},
		},
		{
			name:        "repeated requests reported every time",
			table:       []string{"A1"},
			ids:         []string{"A1", "B", "A1", "B"},
			wantMatched: []string{"A1"},
			wantMissing: []string{"B", "B"},
		},
		{
			name:        "duplicate table ids match first row only",
			table:       []string{"A1", "A2", "A1"},
			ids:         []string{"A1"},
			wantMatched: []string{"A1"},
		},
		{
			name:        "no matches",
			table:       []string{"A1"},
			ids:         []string{"Z"},
			wantMissing: []string{"Z"},
			wantErr:     true,
		},
		{
			name:    "empty request",
			table:   []string{"A1"},
			ids:     nil,
			wantErr: true,
		},
		{
			name:    "blank entries ignored",
			table:   []string{"A1"},
			ids:     []string{" ", ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Select(table(t, tt.table...), tt.ids)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNoMatches)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, res)

			got := res.Matched.IDs()
			if len(tt.wantMatched) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.wantMatched, got)
			}
			assert.Equal(t, tt.wantMissing, res.Missing)
		})
	}
}

func TestSelectDuplicateKeepsFirstRow(t *testing.T) {
	tbl := table(t, "A1", "A2", "A1")
	res, err := Select(tbl, []string{"A1"})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Matched.At(0).Get("title"))
}

func TestSelectProperties(t *testing.T) {
	tbl := table(t, "A", "B", "C", "D", "E")
	requests := [][]string{
		{"A"}, {"E", "A"}, {"X", "C", "Y"}, {"B", "B", "D"}, {"A", "B", "C", "D", "E", "F"},
	}

	for _, ids := range requests {
		res, _ := Select(tbl, ids)

		requested := make(map[string]bool)
		for _, id := range ids {
			requested[id] = true
		}
		matched := make(map[string]bool)
		for _, id := range res.Matched.IDs() {
			assert.True(t, requested[id], "matched id %q was not requested", id)
			matched[id] = true
		}
		for _, id := range res.Missing {
			assert.False(t, matched[id], "id %q both matched and missing", id)
		}
		for _, id := range ids {
			assert.True(t, matched[id] || contains(res.Missing, id), "id %q unaccounted for", id)
		}

		// matched is a subsequence of the table
		pos := -1
		for _, id := range res.Matched.IDs() {
			i, ok := tbl.Find(id)
			require.True(t, ok)
			assert.Greater(t, i, pos)
			pos = i
		}
	}
}

func TestAll(t *testing.T) {
	res, err := All(table(t, "A1", "A2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, res.Matched.IDs())

	_, err = All(table(t))
	assert.ErrorIs(t, err, ErrNoMatches)
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"HU001, HU002, HU003", []string{"HU001", "HU002", "HU003"}},
		{"HU001;HU002\nHU003", []string{"HU001", "HU002", "HU003"}},
		{" ,, ", []string{}},
	}
	for _, tt := range tests {
		got := ParseIDs(tt.raw)
		if len(tt.want) == 0 {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, tt.want, got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
