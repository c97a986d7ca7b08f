// Package fs provides file-based persistence for converted documents and
// their assets.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagemd"
)

// Ensure Writer implements pagemd.DocumentWriter at compile time.
var _ pagemd.DocumentWriter = (*Writer)(nil)

// Writer writes documents atomically: content goes to a temporary file in
// the target directory, which is synced and renamed over the target.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDocument writes content to path, creating parent directories. On
// failure the temporary file is removed and path is left untouched.
func (w *Writer) WriteDocument(ctx context.Context, path string, content []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "create directory %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "create temp file: %v", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "write %s: %v", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "sync %s: %v", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "chmod %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "close %s: %v", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "rename to %s: %v", path, err)
	}
	return nil
}
