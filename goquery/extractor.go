package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// Ensure Extractor implements pagemd.Extractor at compile time.
var _ pagemd.Extractor = (*Extractor)(nil)

// Thresholds tune content region selection.
type Thresholds struct {
	// MinLength is the plain-text length a signature match must exceed
	// to be considered.
	MinLength int

	// Strong is the score at which a signature match is accepted without
	// trying the paragraph density fallback.
	Strong int

	// MinParagraphs is the paragraph count a block needs to qualify in
	// the density fallback.
	MinParagraphs int
}

// DefaultThresholds returns the thresholds used by NewExtractor.
func DefaultThresholds() Thresholds {
	return Thresholds{MinLength: 200, Strong: 500, MinParagraphs: 2}
}

var bodyTagRe = regexp.MustCompile(`(?i)<body[\s>/]`)

// Extractor selects the main content region of a page by scoring
// structural signatures, then paragraph density, then falling back to the
// body and finally the whole sanitized document.
type Extractor struct {
	scorer     pagemd.Scorer
	signatures []Signature
	thresholds Thresholds
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithScorer sets the function used to score candidate regions.
func WithScorer(s pagemd.Scorer) Option {
	return func(e *Extractor) {
		e.scorer = s
	}
}

// WithSignatures replaces the ordered signature list.
func WithSignatures(sigs []Signature) Option {
	return func(e *Extractor) {
		e.signatures = sigs
	}
}

// WithThresholds replaces the selection thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Extractor) {
		e.thresholds = t
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		scorer:     pagemd.DensityScore,
		signatures: DefaultSignatures,
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw markup, reads its title and meta fields, and selects
// the content region.
func (e *Extractor) Extract(rawHTML string) (*pagemd.ParsedDocument, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	raw, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}

	sanitized := pagemd.Sanitize(rawHTML)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}
	// Nested same-name elements survive the textual pass.
	doc.Find(strings.Join(pagemd.NonContentElements, ", ")).Remove()

	s := &search{doc: doc, sanitized: sanitized, hasBody: bodyTagRe.MatchString(sanitized)}
	for _, strategy := range e.strategies() {
		if strategy(s) {
			break
		}
	}

	return &pagemd.ParsedDocument{
		Title:       readTitle(raw),
		Meta:        readMeta(raw),
		ContentHTML: s.best.html,
		ContentText: s.best.text,
		Strategy:    s.best.strategy,
	}, nil
}

// search carries selection state through the strategy chain.
type search struct {
	doc       *goquery.Document
	sanitized string
	hasBody   bool
	best      *region
}

type region struct {
	html     string
	text     string
	score    int
	strategy string
}

// strategy proposes a region and reports whether the search is done.
type strategy func(s *search) bool

func (e *Extractor) strategies() []strategy {
	return []strategy{
		e.bySignature,
		e.byDensity,
		byBody,
		byDocument,
	}
}

// bySignature keeps the highest scoring match across all signatures. A
// later match replaces the incumbent only with a strictly greater score.
func (e *Extractor) bySignature(s *search) bool {
	for _, sig := range e.signatures {
		s.doc.Find(sig.Selector).Each(func(_ int, sel *goquery.Selection) {
			// Matches nested in another match of the same signature overlap it.
			if sel.ParentsFiltered(sig.Selector).Length() > 0 {
				return
			}
			text := pagemd.NormalizeSpace(sel.Text())
			if pagemd.TextLength(text) <= e.thresholds.MinLength {
				return
			}
			score := e.scorer(text)
			if s.best != nil && score <= s.best.score {
				return
			}
			html, err := sel.Html()
			if err != nil {
				return
			}
			s.best = &region{
				html:     html,
				text:     text,
				score:    score,
				strategy: pagemd.StrategySignature + ":" + sig.Name,
			}
		})
	}
	return s.best != nil && s.best.score >= e.thresholds.Strong
}

// byDensity looks for the block with the most paragraphs. Each div is
// measured without its nested divs. A block replaces a weak signature
// match only when its text is longer than that match's score.
func (e *Extractor) byDensity(s *search) bool {
	if !s.hasBody {
		return s.best != nil
	}

	threshold := 0
	if s.best != nil {
		threshold = s.best.score
	}

	s.doc.Find("body, body div").Each(func(_ int, sel *goquery.Selection) {
		own := sel.Clone()
		own.Find("div").Remove()
		if own.Find("p").Length() < e.thresholds.MinParagraphs {
			return
		}
		text := pagemd.NormalizeSpace(own.Text())
		length := pagemd.TextLength(text)
		if length <= threshold {
			return
		}
		html, err := own.Html()
		if err != nil {
			return
		}
		threshold = length
		s.best = &region{html: html, text: text, score: length, strategy: pagemd.StrategyDensity}
	})
	return s.best != nil
}

func byBody(s *search) bool {
	if !s.hasBody {
		return false
	}
	body := s.doc.Find("body")
	html, err := body.Html()
	if err != nil || strings.TrimSpace(html) == "" {
		return false
	}
	text := pagemd.NormalizeSpace(body.Text())
	s.best = &region{html: html, text: text, score: pagemd.TextLength(text), strategy: pagemd.StrategyBody}
	return true
}

// byDocument returns the sanitized markup unchanged.
func byDocument(s *search) bool {
	text := pagemd.StripTags(s.sanitized)
	s.best = &region{html: s.sanitized, text: text, score: pagemd.TextLength(text), strategy: pagemd.StrategyDocument}
	return true
}

// ReadHead parses raw markup and returns its title and meta fields.
func ReadHead(rawHTML string) (string, pagemd.MetaFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", nil, pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}
	return readTitle(doc), readMeta(doc), nil
}

func readTitle(doc *goquery.Document) string {
	title := doc.Find("head title").First()
	if title.Length() == 0 {
		title = doc.Find("title").First()
	}
	return pagemd.NormalizeSpace(title.Text())
}

// readMeta collects meta fields keyed by name or property. Later
// duplicates overwrite earlier ones.
func readMeta(doc *goquery.Document) pagemd.MetaFields {
	meta := pagemd.MetaFields{}
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key := sel.AttrOr("name", "")
		if key == "" {
			key = sel.AttrOr("property", "")
		}
		if key == "" {
			key = sel.AttrOr("itemprop", "")
		}
		if strings.TrimSpace(key) == "" {
			return
		}
		content, ok := sel.Attr("content")
		if !ok {
			return
		}
		meta.Set(key, strings.TrimSpace(content))
	})
	return meta
}
