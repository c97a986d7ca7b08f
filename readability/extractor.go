package readability

import (
	"strings"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/goquery"
	"github.com/go-shiori/go-readability"
)

// Strategy is reported in ParsedDocument.Strategy.
const Strategy = "readability"

// Ensure Extractor implements pagemd.Extractor at compile time.
var _ pagemd.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The byline,
// excerpt and site name fill author, description and og:site_name when
// the page has no such meta fields.
func (e *Extractor) Extract(rawHTML string) (*pagemd.ParsedDocument, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	title, meta, err := goquery.ReadHead(rawHTML)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "readability: %v", err)
	}

	fill(meta, "author", article.Byline)
	fill(meta, "description", article.Excerpt)
	fill(meta, "og:site_name", article.SiteName)
	if title == "" {
		title = article.Title
	}

	content := article.Content
	if strings.TrimSpace(content) == "" {
		content = pagemd.Sanitize(rawHTML)
	}

	return &pagemd.ParsedDocument{
		Title:       title,
		Meta:        meta,
		ContentHTML: content,
		ContentText: pagemd.NormalizeSpace(article.TextContent),
		Strategy:    Strategy,
	}, nil
}

func fill(meta pagemd.MetaFields, key, value string) {
	if value = strings.TrimSpace(value); value != "" && meta.Get(key) == "" {
		meta.Set(key, value)
	}
}
