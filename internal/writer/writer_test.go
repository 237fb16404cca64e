package writer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)
}

func TestName(t *testing.T) {
	w := New(t.TempDir()).WithClock(fixedClock)
	assert.Equal(t, "prompt_copilot_20240305_140709.txt", w.Name("prompt_copilot", ".txt"))
	assert.Equal(t, "historias_20240305_140709.txt", w.Name("historias", "txt"))
	assert.Equal(t, "20240305_140709", w.Stamp())
}

func TestWriteTimestamped(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := New(dir).WithClock(fixedClock)

	path, err := w.WriteTimestamped("prompt_copilot", "txt", "hola\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prompt_copilot_20240305_140709.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hola\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	_, err := w.WriteFile("doc.txt", "one")
	require.NoError(t, err)
	path, err := w.WriteFile("nested/../doc.txt", "two")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestWriteFileRejectsBadNames(t *testing.T) {
	w := New(t.TempDir())
	for _, name := range []string{"", ".", ".."} {
		_, err := w.WriteFile(name, "x")
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestNewDefaultsToWorkingDir(t *testing.T) {
	assert.Equal(t, ".", New(" ").Dir())
}
