// Package markdown converts HTML content regions to Markdown by walking
// the parse tree.
package markdown

import (
	"html"
	"strconv"
	"strings"

	"github.com/fwojciec/pagemd"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements pagemd.Converter at compile time.
var _ pagemd.Converter = (*Converter)(nil)

// skipped elements never contribute output.
var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "header": true, "footer": true, "aside": true,
	"head": true, "title": true, "meta": true, "link": true,
}

// blocks are rendered as paragraphs separated by blank lines.
var blocks = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"figure": true, "figcaption": true, "center": true, "address": true,
	"form": true, "dl": true, "dt": true, "dd": true, "details": true, "summary": true,
}

// Converter converts HTML fragments to Markdown.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert transforms an HTML fragment into Markdown. Malformed markup
// never fails; unrecognized elements contribute their text only. Named
// references outside the entity table survive as literal text.
func (c *Converter) Convert(fragment string) (string, error) {
	context := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := nethtml.ParseFragment(strings.NewReader(pagemd.EscapeUnknownEntities(fragment)), context)
	if err != nil {
		return "", pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(render(n))
	}
	return Normalize(b.String()), nil
}

// render returns the Markdown for n. Text is entity-escaped so that the
// final decoding pass restores it exactly.
func render(n *nethtml.Node) string {
	switch n.Type {
	case nethtml.TextNode:
		return html.EscapeString(collapseSpace(n.Data))
	case nethtml.ElementNode:
	case nethtml.DocumentNode:
		return renderChildren(n)
	default:
		return ""
	}

	name := n.Data
	switch {
	case skipped[name]:
		return ""
	case blocks[name]:
		return "\n\n" + renderChildren(n) + "\n\n"
	}

	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(name[1:])
		text := pagemd.NormalizeSpace(renderChildren(n))
		if text == "" {
			return ""
		}
		return "\n\n" + strings.Repeat("#", level) + " " + text + "\n\n"
	case "br":
		return "\n"
	case "hr":
		return "\n\n---\n\n"
	case "strong", "b":
		return wrap(renderChildren(n), "**")
	case "em", "i":
		return wrap(renderChildren(n), "*")
	case "s", "strike", "del":
		return wrap(renderChildren(n), "~~")
	case "a":
		return renderLink(n)
	case "img":
		return renderImage(n)
	case "ul", "ol":
		return "\n\n" + strings.Join(listItems(n), "\n") + "\n\n"
	case "li":
		if item := itemText(n); item != "" {
			return "\n- " + item + "\n"
		}
		return ""
	case "pre":
		return renderPre(n)
	case "code":
		return renderCode(n)
	case "blockquote":
		return renderQuote(n)
	case "table":
		return renderTable(n)
	}

	// Anything else, including underline and span wrappers, keeps its
	// content only.
	return renderChildren(n)
}

func renderChildren(n *nethtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(render(c))
	}
	return b.String()
}

// wrap surrounds the trimmed content with marker, keeping edge spaces
// outside the markers.
func wrap(content, marker string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return content
	}
	start := strings.Index(content, trimmed)
	return content[:start] + marker + trimmed + marker + content[start+len(trimmed):]
}

func renderLink(n *nethtml.Node) string {
	text := pagemd.NormalizeSpace(textContent(n))
	if text == "" {
		// Image links keep their images.
		if hasDescendant(n, "img") {
			return renderChildren(n)
		}
		return ""
	}

	href := strings.TrimSpace(attr(n, "href"))
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return html.EscapeString(text)
	}
	return "[" + html.EscapeString(text) + "](" + html.EscapeString(href) + ")"
}

func renderImage(n *nethtml.Node) string {
	src := strings.TrimSpace(attr(n, "src"))
	if src == "" {
		return ""
	}
	alt := pagemd.NormalizeSpace(attr(n, "alt"))
	return "![" + html.EscapeString(alt) + "](" + html.EscapeString(src) + ")"
}

// listItems returns one "- " line per item. Nested lists are flattened
// into the lines following their parent item.
func listItems(list *nethtml.Node) []string {
	var lines []string
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != nethtml.ElementNode {
			continue
		}
		switch c.Data {
		case "li":
			if item := itemText(c); item != "" {
				lines = append(lines, "- "+item)
			}
			for _, nested := range nestedLists(c) {
				lines = append(lines, listItems(nested)...)
			}
		case "ul", "ol":
			lines = append(lines, listItems(c)...)
		}
	}
	return lines
}

// itemText renders an item's own content on a single line.
func itemText(li *nethtml.Node) string {
	var b strings.Builder
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			continue
		}
		b.WriteString(render(c))
	}
	return pagemd.NormalizeSpace(b.String())
}

func nestedLists(li *nethtml.Node) []*nethtml.Node {
	var lists []*nethtml.Node
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			lists = append(lists, c)
		}
	}
	return lists
}

func renderPre(n *nethtml.Node) string {
	text := strings.Trim(textContent(n), "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return "\n\n```" + codeLanguage(n) + "\n" + html.EscapeString(text) + "\n```\n\n"
}

// codeLanguage reads a language-* or lang-* class from a pre element or
// its code child.
func codeLanguage(pre *nethtml.Node) string {
	candidates := []*nethtml.Node{pre}
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && c.Data == "code" {
			candidates = append(candidates, c)
		}
	}
	for _, node := range candidates {
		for _, class := range strings.Fields(attr(node, "class")) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
					return lang
				}
			}
		}
	}
	return ""
}

func renderCode(n *nethtml.Node) string {
	text := collapseSpace(textContent(n))
	if strings.TrimSpace(text) == "" {
		return ""
	}
	fence := "`"
	if strings.Contains(text, "`") {
		fence = "``"
		text = " " + text + " "
	}
	return fence + html.EscapeString(text) + fence
}

func renderQuote(n *nethtml.Node) string {
	var lines []string
	for _, line := range strings.Split(renderChildren(n), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, "> "+line)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

// renderTable emits one pipe-delimited line per row, with a separator
// after the first row. Nested tables are rendered as cell text.
func renderTable(table *nethtml.Node) string {
	var lines []string
	for _, row := range tableRows(table) {
		var cells []string
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, cellText(c))
			}
		}
		if len(cells) == 0 {
			continue
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if len(lines) == 1 {
			sep := make([]string, len(cells))
			for i := range sep {
				sep[i] = "---"
			}
			lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

func tableRows(table *nethtml.Node) []*nethtml.Node {
	var rows []*nethtml.Node
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != nethtml.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				rows = append(rows, c)
			case "thead", "tbody", "tfoot":
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

func cellText(cell *nethtml.Node) string {
	text := pagemd.NormalizeSpace(textContent(cell))
	return html.EscapeString(strings.ReplaceAll(text, "|", `\|`))
}

// textContent concatenates the text below n, skipping non-content
// elements.
func textContent(n *nethtml.Node) string {
	if n.Type == nethtml.TextNode {
		return n.Data
	}
	if n.Type == nethtml.ElementNode && skipped[n.Data] {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && c.Data == "br" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(textContent(c))
	}
	return b.String()
}

func hasDescendant(n *nethtml.Node, name string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && c.Data == name {
			return true
		}
		if hasDescendant(c, name) {
			return true
		}
	}
	return false
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace replaces each whitespace run with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}
