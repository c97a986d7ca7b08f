package pagemd

import (
	"net/url"
	"regexp"
	"strings"
)

// Meta field aliases, in priority order.
var (
	DateMetaKeys        = []string{"article:published_time", "og:published_time", "published_time", "pubdate", "publishdate", "date"}
	DescriptionMetaKeys = []string{"description", "og:description", "twitter:description"}
	AuthorMetaKeys      = []string{"author", "article:author"}
	KeywordsMetaKeys    = []string{"keywords", "news_keywords"}
)

// titleSuffixRe matches a separator followed by an organizational site
// name, as in "通知_某市人民政府门户网站".
var titleSuffixRe = regexp.MustCompile(`\s*[-_|].*?(?:政府|门户|网站|委员会).*$`)

// contentDatePatterns are label+date layouts searched in content text.
// The first capture group holds the date.
var contentDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`发布[时日]间[：:]\s*(\d{4}[-/年]\d{1,2}[-/月]\d{1,2}日?)`),
	regexp.MustCompile(`日期[：:]\s*(\d{4}[-/年]\d{1,2}[-/月]\d{1,2}日?)`),
	regexp.MustCompile(`(\d{4}[-/年]\d{1,2}[-/月]\d{1,2}日?)\s*(?:发布|来源)`),
	regexp.MustCompile(`时间[：:]\s*(\d{4}[-/]\d{1,2}[-/]\d{1,2})`),
	regexp.MustCompile(`(?i)(?:published|posted)(?:\s+on)?\s*[:：]?\s*(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})`),
}

var (
	urlMonthRe = regexp.MustCompile(`(\d{4})(\d{2})[/_](?:t\d+_)?`)
	urlDayRe   = regexp.MustCompile(`(\d{4})[-/](\d{2})[-/](\d{2})`)
)

// sourcePatterns find a publishing unit in content text when no author
// meta field exists.
var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`来源[：:]\s*([^\s<]+)`),
	regexp.MustCompile(`发布(?:单位|机构)[：:]\s*([^\s<]+)`),
	regexp.MustCompile(`(?i)\bsource\s*[:：]\s*([^\s<]+)`),
}

var dateSeparators = strings.NewReplacer("年", "-", "月", "-", "日", "", "/", "-", ".", "-")

// DateStrategy looks for a publication date. It returns false when the
// source it inspects has none.
type DateStrategy func(doc *ParsedDocument, sourceURL string) (string, bool)

// DateStrategies is the priority order used by ExtractMetadata.
// The first strategy that finds a date wins.
var DateStrategies = []DateStrategy{MetaDate, ContentDate, URLDate}

// MetaDate reads the structured published-time meta fields.
func MetaDate(doc *ParsedDocument, _ string) (string, bool) {
	v := doc.Meta.First(DateMetaKeys...)
	return v, v != ""
}

// ContentDate searches the content text for label+date layouts and
// normalizes separators to "-".
func ContentDate(doc *ParsedDocument, _ string) (string, bool) {
	text := contentText(doc)
	for _, re := range contentDatePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return dateSeparators.Replace(m[1]), true
		}
	}
	return "", false
}

// URLDate recognizes YYYYMM/ and YYYY-MM-DD (or YYYY/MM/DD) segments in
// the URL path.
func URLDate(_ *ParsedDocument, sourceURL string) (string, bool) {
	path := sourceURL
	if u, err := url.Parse(sourceURL); err == nil && u.Path != "" {
		path = u.Path
	}
	if m := urlMonthRe.FindStringSubmatch(path); m != nil {
		return m[1] + "-" + m[2], true
	}
	if m := urlDayRe.FindStringSubmatch(path); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], true
	}
	return "", false
}

// ExtractMetadata derives Metadata from a parsed document. Every lookup is
// best effort; missing values are empty strings.
func ExtractMetadata(doc *ParsedDocument, sourceURL string) Metadata {
	meta := doc.Meta

	md := Metadata{
		Title:       CleanTitle(strings.TrimSpace(doc.Title)),
		Description: meta.First(DescriptionMetaKeys...),
		Author:      meta.First(AuthorMetaKeys...),
		Keywords:    meta.First(KeywordsMetaKeys...),
		SourceURL:   sourceURL,
	}
	if md.Title == "" {
		md.Title = CleanTitle(meta.First("og:title", "twitter:title"))
	}

	for _, strategy := range DateStrategies {
		if date, ok := strategy(doc, sourceURL); ok {
			md.Date = date
			break
		}
	}

	if md.Author == "" {
		md.Author = findSource(contentText(doc))
	}

	return md
}

// CleanTitle strips a trailing site-name suffix. Titles the cleanup would
// empty are returned unchanged.
func CleanTitle(title string) string {
	cleaned := strings.TrimSpace(titleSuffixRe.ReplaceAllString(title, ""))
	if cleaned == "" {
		return strings.TrimSpace(title)
	}
	return cleaned
}

func findSource(text string) string {
	for _, re := range sourcePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func contentText(doc *ParsedDocument) string {
	if doc.ContentText != "" {
		return doc.ContentText
	}
	return StripTags(doc.ContentHTML)
}
