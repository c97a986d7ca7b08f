package pagemd

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// namedEntities is the fixed table of named references DecodeEntities resolves.
var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"nbsp":   " ",
	"ensp":   " ",
	"emsp":   " ",
	"ndash":  "–",
	"mdash":  "—",
	"hellip": "…",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"middot": "·",
	"bull":   "•",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"times":  "×",
	"divide": "÷",
	"plusmn": "±",
	"laquo":  "«",
	"raquo":  "»",
}

var entityRe = regexp.MustCompile(`&(?:#([0-9]{1,8})|#[xX]([0-9a-fA-F]{1,8})|([a-zA-Z][a-zA-Z0-9]{1,31}));`)

// DecodeEntities resolves numeric character references and the named
// references in a fixed typography table. Unknown names, invalid code
// points and bare ampersands are left verbatim. References are resolved in
// a single left-to-right pass, so "&amp;lt;" decodes to "&lt;".
func DecodeEntities(s string) string {
	if !containsAmp(s) {
		return s
	}
	return entityRe.ReplaceAllStringFunc(s, func(ref string) string {
		m := entityRe.FindStringSubmatch(ref)
		switch {
		case m[1] != "":
			return codePoint(ref, m[1], 10)
		case m[2] != "":
			return codePoint(ref, m[2], 16)
		}
		if v, ok := namedEntities[m[3]]; ok {
			return v
		}
		return ref
	})
}

var namedRefRe = regexp.MustCompile(`&([a-zA-Z][a-zA-Z0-9]{1,31});`)

// EscapeUnknownEntities escapes the ampersand of every named reference
// outside the DecodeEntities table, so an HTML parser reading s keeps
// those references as literal text.
func EscapeUnknownEntities(s string) string {
	if !containsAmp(s) {
		return s
	}
	return namedRefRe.ReplaceAllStringFunc(s, func(ref string) string {
		if _, ok := namedEntities[ref[1:len(ref)-1]]; ok {
			return ref
		}
		return "&amp;" + ref[1:]
	})
}

func codePoint(ref, digits string, base int) string {
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n == 0 {
		return ref
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return ref
	}
	return string(r)
}

func containsAmp(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '&' {
			return true
		}
	}
	return false
}
