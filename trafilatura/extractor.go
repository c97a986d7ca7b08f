package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Strategy is reported in ParsedDocument.Strategy.
const Strategy = "trafilatura"

// Ensure Extractor implements pagemd.Extractor at compile time.
var _ pagemd.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Trafilatura's
// own metadata fills author, description and published time when the page
// has no such meta fields.
func (e *Extractor) Extract(rawHTML string) (*pagemd.ParsedDocument, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	title, meta, err := goquery.ReadHead(rawHTML)
	if err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(contentHTML) == "" {
		contentHTML = pagemd.Sanitize(rawHTML)
	}

	md := result.Metadata
	fill(meta, "author", md.Author)
	fill(meta, "description", md.Description)
	fill(meta, "og:site_name", md.Sitename)
	if !md.Date.IsZero() {
		fill(meta, "article:published_time", md.Date.Format("2006-01-02"))
	}
	if title == "" {
		title = md.Title
	}

	return &pagemd.ParsedDocument{
		Title:       title,
		Meta:        meta,
		ContentHTML: contentHTML,
		ContentText: pagemd.NormalizeSpace(result.ContentText),
		Strategy:    Strategy,
	}, nil
}

func fill(meta pagemd.MetaFields, key, value string) {
	if value = strings.TrimSpace(value); value != "" && meta.Get(key) == "" {
		meta.Set(key, value)
	}
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
