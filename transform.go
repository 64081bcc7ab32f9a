package htmlmd

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// transformer holds the state threaded through the HTML → tree walk.
type transformer struct {
	opts    Options
	base    *url.URL // frozen from the first valid <base href>
	inTable bool
	qDepth  int // <q> nesting depth, cycles Options.Quotes
}

// transform maps a parsed HTML tree onto a Markdown document tree. It is
// total: unknown or malformed markup degrades to its content, never to an
// error.
func transform(root *html.Node, opts Options) *Document {
	t := &transformer{opts: opts}
	doc := &Document{Children: wrapBlocks(t.all(root))}
	normalizeWhitespace(doc)
	return doc
}

func (t *transformer) all(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, t.one(c)...)
	}
	return out
}

func (t *transformer) one(n *html.Node) []Node {
	switch n.Type {
	case html.TextNode:
		return t.text(n.Data)
	case html.CommentNode:
		return []Node{&HTML{Text: "<!--" + n.Data + "-->"}}
	case html.ElementNode:
		return t.element(n)
	case html.DocumentNode:
		return t.all(n)
	}
	return nil
}

func (t *transformer) text(s string) []Node {
	if s == "" {
		return nil
	}
	collapsed := collapseWhitespace(s, t.opts.Newlines)
	if collapsed == "" {
		return nil
	}
	return []Node{&Text{Text: collapsed}}
}

// Elements dropped together with their content.
var ignoredElements = map[string]bool{
	"applet": true, "area": true, "basefont": true, "bgsound": true,
	"caption": true, "col": true, "colgroup": true, "command": true,
	"content": true, "datalist": true, "dialog": true, "element": true,
	"embed": true, "frame": true, "frameset": true, "isindex": true,
	"keygen": true, "link": true, "math": true, "menu": true,
	"menuitem": true, "meta": true, "nextid": true, "noembed": true,
	"noframes": true, "optgroup": true, "option": true, "param": true,
	"script": true, "select": true, "shadow": true, "source": true,
	"spacer": true, "style": true, "svg": true, "template": true,
	"title": true, "track": true, "wbr": true,
}

// Elements replaced by their children without wrapping.
var transparentElements = map[string]bool{
	"abbr": true, "acronym": true, "bdi": true, "bdo": true, "big": true,
	"blink": true, "button": true, "canvas": true, "cite": true,
	"data": true, "details": true, "dfn": true, "font": true, "head": true,
	"ins": true, "label": true, "map": true, "marquee": true, "meter": true,
	"nobr": true, "noscript": true, "object": true, "output": true,
	"progress": true, "rb": true, "rbc": true, "rp": true, "rt": true,
	"rtc": true, "ruby": true, "slot": true, "small": true, "span": true,
	"sub": true, "sup": true, "tbody": true, "tfoot": true, "thead": true,
	"time": true,
}

// Elements whose children are wrapped as block content.
var flowElements = map[string]bool{
	"address": true, "article": true, "aside": true, "body": true,
	"center": true, "div": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "header": true,
	"hgroup": true, "html": true, "legend": true, "main": true,
	"multicol": true, "nav": true, "picture": true, "section": true,
}

func (t *transformer) element(n *html.Node) []Node {
	tag := n.Data

	switch {
	case ignoredElements[tag]:
		return nil
	case transparentElements[tag]:
		return t.all(n)
	case flowElements[tag]:
		return blocksToNodes(wrapBlocks(t.all(n)))
	}

	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1] - '0')
		return []Node{&Heading{Level: level, Children: t.inlineAll(n)}}

	case "p", "summary":
		return []Node{&Paragraph{Children: t.inlineAll(n)}}

	case "em", "i", "mark", "u":
		return []Node{&Emphasis{Children: t.inlineAll(n)}}

	case "strong", "b":
		return []Node{&Strong{Children: t.inlineAll(n)}}

	case "del", "s", "strike":
		return []Node{&Delete{Children: t.inlineAll(n)}}

	case "a":
		return []Node{&Link{
			URL:      t.resolve(attr(n, "href")),
			Title:    attr(n, "title"),
			Children: t.inlineAll(n),
		}}

	case "img", "image":
		return []Node{&Image{
			URL:   t.resolve(attr(n, "src")),
			Alt:   attr(n, "alt"),
			Title: attr(n, "title"),
		}}

	case "br":
		return []Node{&LineBreak{}}

	case "code", "kbd", "samp", "tt", "var":
		return []Node{&InlineCode{Text: rawText(n)}}

	case "pre", "listing", "xmp", "plaintext":
		return []Node{t.codeBlock(n)}

	case "blockquote":
		return []Node{&Blockquote{Children: wrapBlocks(t.all(n))}}

	case "ol":
		return []Node{t.list(n, true)}

	case "ul", "dir":
		return []Node{t.list(n, false)}

	case "dl":
		return []Node{t.definitionList(n)}

	case "li", "dt", "dd":
		// Outside their list context these flatten to their content.
		return t.all(n)

	case "hr":
		return []Node{&ThematicBreak{}}

	case "table":
		return t.table(n)

	case "tr", "td", "th":
		return t.all(n)

	case "q":
		return t.quoted(n)

	case "input":
		typ := strings.ToLower(attr(n, "type"))
		if typ == "checkbox" || typ == "radio" {
			return []Node{&TaskMarker{Checked: hasAttr(n, "checked")}}
		}
		return nil

	case "base":
		if t.base == nil {
			if u, err := url.Parse(attr(n, "href")); err == nil && u.IsAbs() {
				t.base = u
			}
		}
		return nil

	case "audio", "video", "iframe":
		return t.media(n)

	case "textarea":
		return []Node{&Text{Text: rawText(n)}}
	}

	// Unknown elements flatten to their children.
	return t.all(n)
}

// inlineAll converts an element's children to inline content. Block
// children degrade to their inline content; blocks never nest inside
// inlines.
func (t *transformer) inlineAll(n *html.Node) []Inline {
	return flattenInlines(t.all(n))
}

func flattenInlines(nodes []Node) []Inline {
	var out []Inline
	for _, n := range nodes {
		switch v := n.(type) {
		case Inline:
			out = append(out, v)
		case *Paragraph:
			out = append(out, v.Children...)
		case *Heading:
			out = append(out, v.Children...)
		case *Blockquote:
			out = append(out, flattenInlines(blocksToNodes(v.Children))...)
		case *List:
			for _, item := range v.Items {
				out = append(out, flattenInlines(blocksToNodes(item.Children))...)
			}
		case *CodeBlock:
			out = append(out, &InlineCode{Text: v.Text})
		case *Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					out = append(out, cell.Children...)
				}
			}
		}
	}
	return out
}

func blocksToNodes(blocks []Block) []Node {
	nodes := make([]Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	return nodes
}

func (t *transformer) list(n *html.Node, ordered bool) *List {
	start := 1
	if ordered {
		if v, err := strconv.Atoi(attr(n, "start")); err == nil && v >= 0 {
			start = v
		}
	}

	var items []*ListItem
	spread := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		item := &ListItem{Children: wrapBlocks(t.all(c))}
		if len(item.Children) > 1 {
			spread = true
		}
		items = append(items, item)
	}

	return &List{Ordered: ordered, Start: start, Tight: !spread, Items: items}
}

// definitionList maps <dl> onto an unordered list: each run of <dt> terms
// with its following <dd> definitions becomes one item, the definitions
// nested as a sublist.
func (t *transformer) definitionList(n *html.Node) *List {
	type group struct {
		terms []*html.Node
		defs  []*html.Node
	}

	var groups []group
	var current group
	flush := func() {
		if len(current.terms) > 0 || len(current.defs) > 0 {
			groups = append(groups, current)
			current = group{}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			if len(current.defs) > 0 {
				flush()
			}
			current.terms = append(current.terms, c)
		case "dd":
			current.defs = append(current.defs, c)
		}
	}
	flush()

	var items []*ListItem
	for _, g := range groups {
		var blocks []Block
		for _, dt := range g.terms {
			blocks = append(blocks, &Paragraph{Children: t.inlineAll(dt)})
		}
		if len(g.defs) > 0 {
			defs := make([]*ListItem, 0, len(g.defs))
			for _, dd := range g.defs {
				defs = append(defs, &ListItem{Children: wrapBlocks(t.all(dd))})
			}
			blocks = append(blocks, &List{Start: 1, Tight: true, Items: defs})
		}
		items = append(items, &ListItem{Children: blocks})
	}

	return &List{Start: 1, Tight: true, Items: items}
}

func (t *transformer) table(n *html.Node) []Node {
	// Nested tables degrade to their content.
	if t.inTable {
		return t.all(n)
	}
	t.inTable = true
	defer func() { t.inTable = false }()

	var rows []*TableRow
	var align []Alignment
	var collect func(*html.Node)
	collect = func(el *html.Node) {
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				collect(c)
			case "tr":
				row := &TableRow{}
				col := 0
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
						continue
					}
					row.Cells = append(row.Cells, &TableCell{Children: t.inlineAll(cell)})
					for len(align) <= col {
						align = append(align, AlignNone)
					}
					if align[col] == AlignNone {
						align[col] = parseAlign(attr(cell, "align"))
					}
					col++
				}
				rows = append(rows, row)
			}
		}
	}
	collect(n)

	if len(rows) == 0 {
		return nil
	}
	return []Node{&Table{Align: align, Rows: rows}}
}

func parseAlign(s string) Alignment {
	switch strings.ToLower(s) {
	case "left":
		return AlignLeft
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	}
	return AlignNone
}

// quoted wraps a <q> element's content in quote characters, cycling
// Options.Quotes by nesting depth.
func (t *transformer) quoted(n *html.Node) []Node {
	quotes := t.opts.Quotes
	if len(quotes) == 0 {
		quotes = []string{`"`}
	}
	entry := quotes[t.qDepth%len(quotes)]
	open, closing := `"`, `"`
	if r := []rune(entry); len(r) >= 1 {
		open = string(r[0])
		closing = open
		if len(r) >= 2 {
			closing = string(r[1])
		}
	}

	t.qDepth++
	inner := t.inlineAll(n)
	t.qDepth--

	out := make([]Node, 0, len(inner)+2)
	out = append(out, &Text{Text: open})
	for _, in := range inner {
		out = append(out, in)
	}
	return append(out, &Text{Text: closing})
}

// media maps audio/video/iframe onto a link to their source.
func (t *transformer) media(n *html.Node) []Node {
	src := attr(n, "src")
	if src == "" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "source" {
				if s := attr(c, "src"); s != "" {
					src = s
					break
				}
			}
		}
	}

	children := t.inlineAll(n)
	if src == "" {
		nodes := make([]Node, len(children))
		for i, c := range children {
			nodes[i] = c
		}
		return nodes
	}
	resolved := t.resolve(src)
	if len(children) == 0 {
		children = []Inline{&Text{Text: resolved}}
	}
	return []Node{&Link{URL: resolved, Children: children}}
}

func (t *transformer) codeBlock(n *html.Node) *CodeBlock {
	lang := ""
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			lang = languageClass(attr(c, "class"))
			break
		}
	}
	if lang == "" {
		lang = languageClass(attr(n, "class"))
	}

	text := rawText(n)
	text = strings.TrimPrefix(text, "\n")
	text = strings.TrimSuffix(text, "\n")

	return &CodeBlock{Lang: lang, Text: text}
}

func languageClass(class string) string {
	for _, f := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(f, "language-"); ok && lang != "" {
			return lang
		}
	}
	return ""
}

// resolve resolves a URL reference against the frozen <base> URL.
func (t *transformer) resolve(raw string) string {
	if t.base == nil || raw == "" {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return t.base.ResolveReference(ref).String()
}

// rawText concatenates an element's text content verbatim.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(el *html.Node) {
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			} else {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
