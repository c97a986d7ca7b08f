package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of pagemd.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, path string, content []byte) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, path string, content []byte) error {
	return w.WriteDocumentFn(ctx, path, content)
}

var (
	_ pagemd.AssetStore = (*AssetStore)(nil)
	_ pagemd.AssetDir   = (*AssetDir)(nil)
)

// AssetStore is a mock implementation of pagemd.AssetStore.
type AssetStore struct {
	AssetDirFn func(path string) pagemd.AssetDir
}

func (s *AssetStore) AssetDir(path string) pagemd.AssetDir {
	return s.AssetDirFn(path)
}

// AssetDir is a mock implementation of pagemd.AssetDir.
type AssetDir struct {
	PathFn      func() string
	ExistsFn    func(name string) (bool, error)
	WriteFileFn func(name string, data []byte) error
}

func (d *AssetDir) Path() string {
	return d.PathFn()
}

func (d *AssetDir) Exists(name string) (bool, error) {
	return d.ExistsFn(name)
}

func (d *AssetDir) WriteFile(name string, data []byte) error {
	return d.WriteFileFn(name, data)
}
