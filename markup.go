package pagemd

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NonContentElements are removed wholesale before scoring and conversion.
var NonContentElements = []string{"script", "style", "noscript", "nav", "header", "footer", "aside"}

var (
	commentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	nonContentRe = buildElementRes(NonContentElements)
)

func buildElementRes(names []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		res = append(res, regexp.MustCompile(`(?is)<`+name+`\b[^>]*>.*?</`+name+`\s*>`))
	}
	return res
}

// Sanitize removes comments and non-content elements from raw markup.
// Each element is matched from its opening tag to the first closing tag of
// the same name, so deeply nested same-name elements may leave remnants;
// tree-based consumers remove those in a second pass.
func Sanitize(html string) string {
	out := commentRe.ReplaceAllString(html, "")
	for _, re := range nonContentRe {
		out = re.ReplaceAllString(out, "")
	}
	return out
}

// StripTags reduces markup to whitespace-normalized plain text with
// entities decoded. It is meant for measuring content, not for output.
func StripTags(html string) string {
	return NormalizeSpace(DecodeEntities(tagRe.ReplaceAllString(html, " ")))
}

// NormalizeSpace collapses all whitespace runs to single spaces and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Scorer assigns a content score to plain text.
type Scorer func(text string) int

// DensityScore scores text as its length in characters plus two points per
// CJK ideograph, favoring dense ideographic prose.
func DensityScore(text string) int {
	return TextLength(text) + 2*CountCJK(text)
}

// TextLength returns the number of characters in text.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}

// CountCJK counts characters in the CJK Unified Ideographs block U+4E00–U+9FA5.
func CountCJK(text string) int {
	n := 0
	for _, r := range text {
		if IsCJK(r) {
			n++
		}
	}
	return n
}

// IsCJK reports whether r is a CJK unified ideograph.
func IsCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fa5
}
