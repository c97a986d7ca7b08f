package pagemd_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	t.Run("keeps CJK and ascii word characters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "关于_2024年_Planv2", pagemd.SanitizeFilename("关于 2024年 Plan-v2!"))
	})

	t.Run("collapses underscore runs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a_b", pagemd.SanitizeFilename("a \t __ b"))
	})

	t.Run("caps length in characters", func(t *testing.T) {
		t.Parallel()

		got := pagemd.SanitizeFilename(strings.Repeat("标", 100))

		assert.Equal(t, pagemd.MaxFilenameLength, len([]rune(got)))
	})
}

func TestDocumentBaseName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC)

	t.Run("uses title", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Hello_World", pagemd.DocumentBaseName("Hello World", "https://example.com/a", now))
	})

	t.Run("falls back to host and path", func(t *testing.T) {
		t.Parallel()

		got := pagemd.DocumentBaseName("!!!", "https://www.example.com/news/item-1.html", now)

		assert.Equal(t, "www_example_com_news_item_1_html", got)
	})

	t.Run("falls back to timestamp", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "untitled_20240309_080706", pagemd.DocumentBaseName("", "%%%", now))
	})
}

func TestImageFilename(t *testing.T) {
	t.Parallel()

	t.Run("uses url base name", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "photo.jpg", pagemd.ImageFilename("https://cdn.example.com/img/photo.jpg?w=200", 0, ""))
	})

	t.Run("numbers unnamed images", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "image_3.png", pagemd.ImageFilename("https://cdn.example.com/", 3, "image/png"))
	})

	t.Run("uses content type for long extensions", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "pic.gif", pagemd.ImageFilename("https://x.test/pic.download", 0, "image/gif; charset=binary"))
	})

	t.Run("defaults to jpg", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "getimage.jpg", pagemd.ImageFilename("https://x.test/getimage", 0, "application/octet-stream"))
	})
}

func TestCollisionFreeName(t *testing.T) {
	t.Parallel()

	t.Run("returns free name unchanged", func(t *testing.T) {
		t.Parallel()

		got, err := pagemd.CollisionFreeName("photo.jpg", func(string) (bool, error) { return false, nil })

		require.NoError(t, err)
		assert.Equal(t, "photo.jpg", got)
	})

	t.Run("appends counter before extension", func(t *testing.T) {
		t.Parallel()

		taken := map[string]bool{"photo.jpg": true, "photo_1.jpg": true}
		got, err := pagemd.CollisionFreeName("photo.jpg", func(name string) (bool, error) { return taken[name], nil })

		require.NoError(t, err)
		assert.Equal(t, "photo_2.jpg", got)
	})

	t.Run("returns the existence check error", func(t *testing.T) {
		t.Parallel()

		_, err := pagemd.CollisionFreeName("photo.jpg", func(string) (bool, error) {
			return false, pagemd.Errorf(pagemd.EWRITE, "denied")
		})

		assert.Equal(t, pagemd.EWRITE, pagemd.ErrorCode(err))
	})
}

func TestAssetPaths(t *testing.T) {
	t.Parallel()

	doc := pagemd.DocumentPath("out", "通知")

	assert.Equal(t, filepath.Join("out", "通知.md"), doc)
	assert.Equal(t, filepath.Join("out", "通知_files"), pagemd.AssetDirFor(doc))
	assert.Equal(t, "通知_files/photo.jpg", pagemd.AssetRelativePath(doc, "photo.jpg"))
}
