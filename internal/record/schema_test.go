package record

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	s, err := NewSchema([]string{" ID_US ", "", "Titulo", "Ramo", "Titulo"}, "ID_US")
	require.NoError(t, err)

	assert.Equal(t, []string{"ID_US", "Titulo", "Ramo"}, s.Names())
	assert.Equal(t, "ID_US", s.IDField())
	assert.Equal(t, 3, s.Len())

	i, ok := s.Index("Ramo")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = s.Index("Titulo")
	assert.True(t, ok)
	assert.Equal(t, 2, i, "repeated header keeps the first column")

	_, ok = s.Index("Release")
	assert.False(t, ok)
}

func TestNewSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		idField string
	}{
		{"empty id field", []string{"ID_US"}, " "},
		{"missing id column", []string{"Titulo"}, "ID_US"},
		{"separator in header", []string{"ID_US", "a:::b"}, "ID_US"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.header, tt.idField)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchema))
		})
	}
}

func TestSchemaRow(t *testing.T) {
	s, err := NewSchema([]string{"ID_US", "", "Titulo", "Ramo"}, "ID_US")
	require.NoError(t, err)

	r := s.Row([]string{" HU1 ", "ignored", "Alta"})
	assert.Equal(t, []string{"ID_US", "Titulo", "Ramo"}, r.Names())
	assert.Equal(t, "HU1", r.Get("ID_US"))
	assert.Equal(t, "Alta", r.Get("Titulo"))
	v, ok := r.Lookup("Ramo")
	assert.True(t, ok, "short rows still carry every field")
	assert.Equal(t, "", v)
}

func TestNewSchemaNormalizesWhitespace(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Descripción de la\nHdU", "Descripción de la HdU"},
		{" Ramo\r\n Vida ", "Ramo Vida"},
		{"Titulo\t corto", "Titulo corto"},
	}
	header := []string{"ID_US"}
	for _, tt := range tests {
		header = append(header, tt.raw)
	}
	s, err := NewSchema(header, "ID_US")
	require.NoError(t, err)

	for i, tt := range tests {
		assert.Equal(t, tt.want, s.Names()[i+1], tt.raw)
		assert.True(t, s.Has(tt.raw), tt.raw)
		idx, ok := s.Index(tt.want)
		assert.True(t, ok, tt.want)
		assert.Equal(t, i+1, idx)
	}
}
