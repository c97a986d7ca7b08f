package pagemd_test

import (
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/stretchr/testify/assert"
)

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("meta published time wins over content label", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{
			Title:       "关于开展工作的通知",
			Meta:        pagemd.MetaFields{"published_time": "2024-01-05"},
			ContentText: "发布时间：2023-12-31 正文",
		}

		md := pagemd.ExtractMetadata(doc, "https://example.gov.cn/art/202402/t20240201_1.html")

		assert.Equal(t, "2024-01-05", md.Date)
	})

	t.Run("content label wins over url date", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{ContentText: "发布日期：2023年12月31日 正文"}

		md := pagemd.ExtractMetadata(doc, "https://example.gov.cn/art/202402/t20240201_1.html")

		assert.Equal(t, "2023-12-31", md.Date)
	})

	t.Run("date before publish label", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{ContentText: "2023/07/08 发布 正文"}

		assert.Equal(t, "2023-07-08", pagemd.ExtractMetadata(doc, "").Date)
	})

	t.Run("falls back to url month segment", func(t *testing.T) {
		t.Parallel()

		md := pagemd.ExtractMetadata(&pagemd.ParsedDocument{}, "https://example.gov.cn/art/202402/t20240201_1.html")

		assert.Equal(t, "2024-02", md.Date)
	})

	t.Run("falls back to url day segment", func(t *testing.T) {
		t.Parallel()

		md := pagemd.ExtractMetadata(&pagemd.ParsedDocument{}, "https://blog.example.com/2021/03/04/post")

		assert.Equal(t, "2021-03-04", md.Date)
	})

	t.Run("reads content html when text is missing", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{ContentHTML: "<p>Posted on: 2020.01.02</p>"}

		assert.Equal(t, "2020-01-02", pagemd.ExtractMetadata(doc, "").Date)
	})

	t.Run("meta aliases in priority order", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{Meta: pagemd.MetaFields{
			"og:description": "og",
			"description":    "plain",
			"article:author": "Writer",
			"news_keywords":  "a,b",
		}}

		md := pagemd.ExtractMetadata(doc, "https://example.com/")

		assert.Equal(t, "plain", md.Description)
		assert.Equal(t, "Writer", md.Author)
		assert.Equal(t, "a,b", md.Keywords)
		assert.Equal(t, "https://example.com/", md.SourceURL)
	})

	t.Run("source label fills missing author", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{ContentText: "来源：市发展改革委 发布时间：2024-01-01"}

		assert.Equal(t, "市发展改革委", pagemd.ExtractMetadata(doc, "").Author)
	})

	t.Run("author meta suppresses source search", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{
			Meta:        pagemd.MetaFields{"author": "Alice"},
			ContentText: "来源：新华社",
		}

		assert.Equal(t, "Alice", pagemd.ExtractMetadata(doc, "").Author)
	})

	t.Run("og title when title empty", func(t *testing.T) {
		t.Parallel()

		doc := &pagemd.ParsedDocument{Meta: pagemd.MetaFields{"og:title": "Shared"}}

		assert.Equal(t, "Shared", pagemd.ExtractMetadata(doc, "").Title)
	})

	t.Run("empty document yields empty fields", func(t *testing.T) {
		t.Parallel()

		md := pagemd.ExtractMetadata(&pagemd.ParsedDocument{}, "https://example.com/page")

		assert.Equal(t, pagemd.Metadata{SourceURL: "https://example.com/page"}, md)
	})
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	t.Run("strips organizational suffix", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "关于开展工作的通知", pagemd.CleanTitle("关于开展工作的通知_某市人民政府门户网站"))
	})

	t.Run("keeps ordinary separators", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Go - The Good Parts", pagemd.CleanTitle("Go - The Good Parts"))
	})

	t.Run("keeps title the cleanup would empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "- 政府网站", pagemd.CleanTitle("- 政府网站"))
	})
}

func TestMetaFields(t *testing.T) {
	t.Parallel()

	m := pagemd.MetaFields{}
	m.Set(" OG:Title ", "first")
	m.Set("og:title", "second")

	assert.Equal(t, "second", m.Get("OG:TITLE"))
	assert.Equal(t, "second", m.First("missing", "og:title"))

	var empty pagemd.MetaFields
	assert.Empty(t, empty.First("anything"))
}

func TestParsedDocument_WithContent(t *testing.T) {
	t.Parallel()

	doc := &pagemd.ParsedDocument{
		Title:       "通知",
		ContentHTML: `<p><img src="https://img.example.cn/a.png"></p>`,
		Strategy:    "density",
	}

	got := doc.WithContent(`<p><img src="通知_files/a.png"></p>`)

	assert.Equal(t, `<p><img src="通知_files/a.png"></p>`, got.ContentHTML)
	assert.Equal(t, "通知", got.Title)
	assert.Equal(t, "density", got.Strategy)
	assert.Equal(t, `<p><img src="https://img.example.cn/a.png"></p>`, doc.ContentHTML)
}
