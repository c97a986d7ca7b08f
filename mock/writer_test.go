package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteDocumentFn", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		var gotContent []byte
		w := &mock.DocumentWriter{
			WriteDocumentFn: func(_ context.Context, path string, content []byte) error {
				gotPath, gotContent = path, content
				return nil
			},
		}

		err := w.WriteDocument(context.Background(), "out/page.md", []byte("# Page"))

		require.NoError(t, err)
		assert.Equal(t, "out/page.md", gotPath)
		assert.Equal(t, "# Page", string(gotContent))
	})
}

func TestAssetStore_AssetDir(t *testing.T) {
	t.Parallel()

	dir := &mock.AssetDir{PathFn: func() string { return "out/page_files" }}
	store := &mock.AssetStore{
		AssetDirFn: func(path string) pagemd.AssetDir { return dir },
	}

	assert.Equal(t, "out/page_files", store.AssetDir("out/page_files").Path())
}
