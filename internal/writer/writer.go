// Package writer saves generated prompts and documents to disk.
package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidName is returned for output names with no usable base.
var ErrInvalidName = errors.New("invalid output name")

// TimestampLayout is appended to file name prefixes.
const TimestampLayout = "20060102_150405"

// Writer writes text files into a directory.
type Writer struct {
	dir  string
	now  func() time.Time
	perm os.FileMode
}

// New creates a writer rooted at dir. An empty dir means the working
// directory.
func New(dir string) *Writer {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &Writer{
		dir:  dir,
		now:  time.Now,
		perm: 0o644,
	}
}

// WithClock replaces the clock used for timestamped names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Stamp formats the current time with TimestampLayout.
func (w *Writer) Stamp() string {
	return w.now().Format(TimestampLayout)
}

// Name returns "<prefix>_<timestamp>.<ext>" for the current time.
func (w *Writer) Name(prefix, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", prefix, w.Stamp(), ext)
}

// WriteTimestamped writes content to a fresh timestamped file and returns
// its path.
func (w *Writer) WriteTimestamped(prefix, ext, content string) (string, error) {
	return w.WriteFile(w.Name(prefix, ext), content)
}

// WriteFile writes content to name inside the output directory. Only the
// base of name is used.
func (w *Writer) WriteFile(name, content string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}
	dest := filepath.Join(w.dir, base)
	if err := WriteAtomic(dest, []byte(content), w.perm); err != nil {
		return "", err
	}
	return dest, nil
}

// WriteAtomic writes data to a temporary file next to dest and renames it
// into place, so readers never observe a partial file.
func WriteAtomic(dest string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if _, err = bw.Write(data); err != nil {
		return errors.Wrapf(err, "failed to write %s", dest)
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrapf(err, "failed to write %s", dest)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(err, "failed to sync %s", dest)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", dest)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return errors.Wrapf(err, "failed to chmod %s", dest)
	}
	if err = os.Rename(tmpPath, dest); err != nil {
		return errors.Wrapf(err, "failed to replace %s", dest)
	}
	return nil
}
