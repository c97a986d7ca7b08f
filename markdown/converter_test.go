package markdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagemd/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func convert(t *testing.T, html string) string {
	t.Helper()
	md, err := markdown.NewConverter().Convert(html)
	require.NoError(t, err)
	return md
}

// blockKinds parses md as GitHub-flavored Markdown and counts node kinds.
func blockKinds(t *testing.T, md string) map[ast.NodeKind]int {
	t.Helper()
	doc := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser().Parse(text.NewReader([]byte(md)))
	counts := make(map[ast.NodeKind]int)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			counts[n.Kind()]++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return counts
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("heading then paragraph", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<div class="article-content"><h1>标题</h1><p>正文内容，包含中文字符用于计数。</p></div>`)

		assert.Equal(t, "# 标题\n\n正文内容，包含中文字符用于计数。", got)
	})

	t.Run("heading levels", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<h2>Two</h2><h6>Six</h6>`)

		assert.Equal(t, "## Two\n\n###### Six", got)
		assert.Equal(t, 2, blockKinds(t, got)[ast.KindHeading])
	})

	t.Run("inline formatting", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<p><strong>bold</strong> <em>it</em> <u>under</u> <del>gone</del> <span>plain</span></p>`)

		assert.Equal(t, "**bold** *it* under ~~gone~~ plain", got)
		kinds := blockKinds(t, got)
		assert.Equal(t, 2, kinds[ast.KindEmphasis])
		assert.Equal(t, 1, kinds[extast.KindStrikethrough])
	})

	t.Run("moves edge spaces outside markers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a **b** c", convert(t, `<p>a<b> b </b>c</p>`))
		assert.Equal(t, "a c", convert(t, `<p>a<i> </i>c</p>`))
	})

	t.Run("line breaks and rules", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<p>line1<br>line2</p><hr><p>after</p>`)

		assert.Equal(t, "line1\nline2\n\n---\n\nafter", got)
	})

	t.Run("links", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<p><a href="/x?a=1&amp;b=2"><span>Go</span> home</a> and <a href="javascript:void(0)">Click</a></p>`)

		assert.Equal(t, "[Go home](/x?a=1&b=2) and Click", got)
	})

	t.Run("empty links", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "xy", convert(t, `<p>x<a href="/y"></a>y</p>`))
		assert.Equal(t, "plain", convert(t, `<p><a>plain</a></p>`))
		assert.Equal(t, "![s](/small.png)", convert(t, `<p><a href="/big.png"><img src="/small.png" alt="s"></a></p>`))
	})

	t.Run("image attribute order does not matter", func(t *testing.T) {
		t.Parallel()

		altFirst := convert(t, `<p><img alt="A" src="a.png"></p>`)
		srcFirst := convert(t, `<p><img src="a.png" alt="A"></p>`)

		assert.Equal(t, "![A](a.png)", altFirst)
		assert.Equal(t, altFirst, srcFirst)
		assert.Equal(t, "![](b.png)", convert(t, `<p><img src="b.png"></p>`))
	})

	t.Run("lists", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<ul><li>One <b>bold</b></li><li><a href="/t">Two</a><ul><li>Nested</li></ul></li></ul><ol><li>Three</li></ol>`)

		assert.Equal(t, "- One **bold**\n- [Two](/t)\n- Nested\n\n- Three", got)
		assert.Equal(t, 4, blockKinds(t, got)[ast.KindListItem])
	})

	t.Run("preformatted block is fenced verbatim", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "<pre><code class=\"language-go\">func main() {\n\tx := 1 &lt; 2\n}</code></pre>")

		assert.Equal(t, "```go\nfunc main() {\n\tx := 1 < 2\n}\n```", got)
		assert.Equal(t, 1, blockKinds(t, got)[ast.KindFencedCodeBlock])
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Use `go test` now", convert(t, `<p>Use <code>go test</code> now</p>`))
	})

	t.Run("blockquote", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<blockquote><p>First</p><p>Second <b>line</b></p></blockquote>`)

		assert.Equal(t, "> First\n> Second **line**", got)
		assert.Equal(t, 1, blockKinds(t, got)[ast.KindBlockquote])
	})

	t.Run("two by two table", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2|3</td></tr></table>`)

		lines := strings.Split(got, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "| A | B |", lines[0])
		assert.Equal(t, "| --- | --- |", lines[1])
		assert.Equal(t, `| 1 | 2\|3 |`, lines[2])
		assert.Equal(t, 1, blockKinds(t, got)[extast.KindTable])
	})

	t.Run("decodes entities once", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<p>Tom &amp; Jerry &lt;3 &copy; &amp;lt; &quot;q&quot;</p>`)

		assert.Equal(t, `Tom & Jerry <3 © &lt; "q"`, got)
	})

	t.Run("keeps named references outside the table verbatim", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<p>love &hearts; you &foo; &copy; x</p>`)

		assert.Equal(t, "love &hearts; you &foo; © x", got)
	})

	t.Run("malformed tag does not fail", func(t *testing.T) {
		t.Parallel()

		got := convert(t, `<p>Hello</p><div class="x"`)

		assert.Contains(t, got, "Hello")
		assert.NotContains(t, got, "<div")
	})

	t.Run("drops non-content elements", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Body", convert(t, `<nav>Menu</nav><p>Body</p><script>x()</script><footer>(c)</footer>`))
	})

	t.Run("drops stray single characters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Real text\n\n-", convert(t, `<p>Real text</p><p>x</p><p>-</p>`))
	})

	t.Run("collapses nested block spacing", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a1\n\nb2", convert(t, `<div><div><p>a1</p></div></div><p>b2</p>`))
	})

	t.Run("unknown elements keep text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "inside", convert(t, `<custom-tag>inside</custom-tag>`))
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("trims lines and collapses blank runs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a\n\nb", markdown.Normalize("  a  \r\n\r\n\n\n   \n b"))
	})

	t.Run("keeps fenced lines verbatim", func(t *testing.T) {
		t.Parallel()

		in := "```\n  indented\n\n\n\nx\n```"

		assert.Equal(t, in, markdown.Normalize(in))
	})
}
