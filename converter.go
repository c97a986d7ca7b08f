package pagemd

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// The input is a content region, typically with localized images.
	Convert(html string) (string, error)
}
