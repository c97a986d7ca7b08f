package pagemd

// Extraction strategy names reported in ParsedDocument.Strategy.
const (
	StrategySignature = "signature"
	StrategyDensity   = "density"
	StrategyBody      = "body"
	StrategyDocument  = "document"
)

// Extractor isolates the main content region of a page.
type Extractor interface {
	// Extract parses raw markup and returns the title, meta fields and the
	// content region. Weak pages degrade to the body or whole document
	// rather than failing.
	Extract(html string) (*ParsedDocument, error)
}
