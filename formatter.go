package pagemd

import (
	"strings"
	"time"
)

// FormatDocument assembles the final Markdown document: an HTML comment
// recording provenance, the optional title and description, then body.
func FormatDocument(md Metadata, crawled time.Time, body string) string {
	var b strings.Builder
	b.WriteString("<!--\n")
	b.WriteString("  Source: " + md.SourceURL + "\n")
	b.WriteString("  Crawled: " + crawled.Format(time.RFC3339) + "\n")
	if md.Date != "" {
		b.WriteString("  Published: " + md.Date + "\n")
	}
	if md.Author != "" {
		b.WriteString("  Author: " + md.Author + "\n")
	}
	b.WriteString("-->\n\n")

	if md.Title != "" {
		b.WriteString("# " + md.Title + "\n\n")
	}
	if md.Description != "" {
		b.WriteString("> " + NormalizeSpace(md.Description) + "\n\n")
	}

	b.WriteString(strings.TrimSpace(body))
	return strings.TrimRight(b.String(), "\n") + "\n"
}
