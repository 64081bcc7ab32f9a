package htmlmd_test

import (
	"testing"

	"github.com/fwojciec/htmlmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parseMarkdown re-parses output with a GFM-enabled CommonMark parser so
// tests can assert on the structure a downstream renderer would see.
func parseMarkdown(src []byte) ast.Node {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	return md.Parser().Parse(text.NewReader(src))
}

func countKind(root ast.Node, kind ast.NodeKind) int {
	n := 0
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == kind {
			n++
		}
		return ast.WalkContinue, nil
	})
	return n
}

func TestOutputReparsesAsCommonMark(t *testing.T) {
	t.Parallel()

	t.Run("heading keeps its level", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert("<h2>Section</h2>"))
		root := parseMarkdown(src)

		h, ok := root.FirstChild().(*ast.Heading)
		require.True(t, ok)
		assert.Equal(t, 2, h.Level)
	})

	t.Run("unordered list keeps its items", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert("<ul><li>a</li><li>b</li><li>c</li></ul>"))
		root := parseMarkdown(src)

		list, ok := root.FirstChild().(*ast.List)
		require.True(t, ok)
		assert.False(t, list.IsOrdered())
		assert.Equal(t, 3, list.ChildCount())
	})

	t.Run("ordered list keeps its start value", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert(`<ol start="3"><li>a</li><li>b</li></ol>`))
		root := parseMarkdown(src)

		list, ok := root.FirstChild().(*ast.List)
		require.True(t, ok)
		assert.True(t, list.IsOrdered())
		assert.Equal(t, 3, list.Start)
	})

	t.Run("adjacent lists stay separate", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert("<ul><li>a</li></ul><ul><li>b</li></ul>"))
		root := parseMarkdown(src)

		assert.Equal(t, 2, countKind(root, ast.KindList))
	})

	t.Run("table survives as a table", func(t *testing.T) {
		t.Parallel()

		in := "<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>"
		src := []byte(htmlmd.Convert(in))
		root := parseMarkdown(src)

		assert.Equal(t, 1, countKind(root, east.KindTable))
		assert.Equal(t, 1, countKind(root, east.KindTableRow))
		assert.Equal(t, 4, countKind(root, east.KindTableCell))
	})

	t.Run("fenced code keeps its language", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert(`<pre><code class="language-go">x := 1</code></pre>`))
		root := parseMarkdown(src)

		fcb, ok := root.FirstChild().(*ast.FencedCodeBlock)
		require.True(t, ok)
		assert.Equal(t, "go", string(fcb.Language(src)))
	})

	t.Run("escaped markers do not re-parse as emphasis", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert("<p>a*b*c</p>"))
		root := parseMarkdown(src)

		assert.Equal(t, 0, countKind(root, ast.KindEmphasis))
	})

	t.Run("blockquote nests", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert("<blockquote><blockquote><p>deep</p></blockquote></blockquote>"))
		root := parseMarkdown(src)

		assert.Equal(t, 2, countKind(root, ast.KindBlockquote))
	})

	t.Run("strikethrough survives", func(t *testing.T) {
		t.Parallel()

		src := []byte(htmlmd.Convert("<p><del>gone</del></p>"))
		root := parseMarkdown(src)

		assert.Equal(t, 1, countKind(root, east.KindStrikethrough))
	})
}
