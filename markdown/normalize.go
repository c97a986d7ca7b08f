package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagemd"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// blockMarkers may stand alone on a line.
const blockMarkers = "#>-*|"

// Normalize runs the final text passes over rendered Markdown: entity
// decoding, line ending normalization, per-line trimming, removal of stray
// single-character lines, and collapsing of blank line runs to one blank
// line. Lines inside fenced code blocks are kept verbatim.
func Normalize(md string) string {
	md = lineEndings.Replace(pagemd.DecodeEntities(md))

	var out []string
	fenced := false
	blank := false
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			fenced = !fenced
			out = append(out, trimmed)
			blank = false
			continue
		}
		if fenced {
			out = append(out, line)
			continue
		}
		if trimmed == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		if utf8.RuneCountInString(trimmed) == 1 && !strings.ContainsAny(trimmed, blockMarkers) {
			continue
		}
		out = append(out, trimmed)
		blank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
