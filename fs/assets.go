package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagemd"
)

// Ensure implementations satisfy their interfaces at compile time.
var (
	_ pagemd.AssetStore = (*AssetStore)(nil)
	_ pagemd.AssetDir   = (*AssetDir)(nil)
)

// AssetStore opens asset directories on the local filesystem.
type AssetStore struct{}

// NewAssetStore creates a new AssetStore.
func NewAssetStore() *AssetStore {
	return &AssetStore{}
}

// AssetDir returns the directory at path without creating it.
func (s *AssetStore) AssetDir(path string) pagemd.AssetDir {
	return NewAssetDir(path)
}

// AssetDir is a directory of downloaded assets. It is created on the
// first write, so documents without images leave no empty directory.
type AssetDir struct {
	path string
}

// NewAssetDir creates a new AssetDir for path.
func NewAssetDir(path string) *AssetDir {
	return &AssetDir{path: path}
}

// Path returns the directory location.
func (d *AssetDir) Path() string {
	return d.path
}

// Exists reports whether name is present in the directory.
func (d *AssetDir) Exists(name string) (bool, error) {
	_, err := os.Stat(filepath.Join(d.path, name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, pagemd.Errorf(pagemd.EWRITE, "stat %s: %v", name, err)
}

// WriteFile stores data under name. Existing files are never replaced.
func (d *AssetDir) WriteFile(name string, data []byte) (err error) {
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "create directory %s: %v", d.path, err)
	}

	p := filepath.Join(d.path, name)
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "create %s: %v", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = pagemd.Errorf(pagemd.EWRITE, "close %s: %v", name, cerr)
		}
		if err != nil {
			_ = os.Remove(p)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "write %s: %v", name, err)
	}
	return nil
}
