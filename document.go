package pagemd

import (
	"strings"
	"time"
)

// RawDocument is a fetched page and the absolute URL it came from.
type RawDocument struct {
	URL  string
	HTML string
}

// MetaFields holds <meta> values keyed by lower-cased name or property.
// Duplicate keys keep the last value written.
type MetaFields map[string]string

// Set stores value under the lower-cased key.
func (m MetaFields) Set(key, value string) {
	m[strings.ToLower(strings.TrimSpace(key))] = value
}

// Get returns the value for key regardless of case.
func (m MetaFields) Get(key string) string {
	return m[strings.ToLower(key)]
}

// First returns the first non-empty value among keys, in order.
func (m MetaFields) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(m.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// ParsedDocument is the result of extracting a RawDocument.
// ContentHTML is replaced, never edited in place, when assets are localized.
type ParsedDocument struct {
	Title string
	Meta  MetaFields

	// ContentHTML is the selected content region. Never empty for a
	// non-empty page.
	ContentHTML string

	// ContentText is the whitespace-normalized plain text of the region,
	// used for measurement and metadata pattern matching only.
	ContentText string

	// Strategy names the selection strategy that produced the region.
	Strategy string
}

// WithContent returns a copy of the document holding a new content region.
func (d *ParsedDocument) WithContent(html string) *ParsedDocument {
	other := *d
	other.ContentHTML = html
	return &other
}

// Metadata describes a converted document. Undiscoverable fields are empty.
type Metadata struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Keywords    string `json:"keywords"`
	SourceURL   string `json:"sourceUrl"`
}

// ConversionResult describes the files produced for one document.
type ConversionResult struct {
	SourceURL  string
	OutputPath string
	AssetDir   string
	Markdown   string
	Metadata   Metadata
	Strategy   string
	CrawledAt  time.Time

	// Assets lists the images saved, in first-reference order.
	Assets []AssetReference

	// FailedAssets maps original references that could not be saved to
	// the reason. Those references are left unchanged in the output.
	FailedAssets map[string]error
}
