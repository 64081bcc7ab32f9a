package htmlmd

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// renderState is threaded through the serializer's tree walk.
type renderState struct {
	opts Options

	// Current unordered bullet; lists switch bullets to avoid being
	// merged with an adjacent sibling list by Markdown parsers.
	bulletCurrent  string
	bulletLastUsed string
	// Delimiter used by the previous ordered list, for the same reason.
	orderedLastUsed string

	// Whether the next text is emitted at the start of a block line and
	// needs at-break escaping.
	atBreak bool

	inLinkText  bool
	inTableCell bool
}

// render serializes a document tree under validated options. Output ends
// with exactly one newline unless the document is empty, which yields the
// empty string.
func render(doc *Document, opts Options) string {
	st := &renderState{opts: opts}
	out := st.flow(doc.Children, "\n\n")
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// flow serializes block children joined by the given separator: a blank
// line between siblings, a bare newline inside tight lists.
func (st *renderState) flow(blocks []Block, sep string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, st.block(b))
	}
	return strings.Join(parts, sep)
}

func (st *renderState) block(b Block) string {
	switch v := b.(type) {
	case *Paragraph:
		return st.paragraph(v)
	case *Heading:
		return st.heading(v)
	case *ThematicBreak:
		return st.thematicBreak()
	case *Blockquote:
		return st.blockquote(v)
	case *List:
		return st.list(v)
	case *CodeBlock:
		return st.codeBlock(v)
	case *Table:
		return st.table(v)
	case *HTML:
		return v.Text
	}
	return ""
}

func (st *renderState) paragraph(p *Paragraph) string {
	st.atBreak = true
	content := st.phrasing(p.Children)
	st.atBreak = false
	return content
}

func (st *renderState) heading(h *Heading) string {
	content := st.phrasing(h.Children)

	// Setext only exists for levels 1 and 2. It is also forced when the
	// content spans lines, which an ATX heading cannot express.
	useSetext := h.Level <= 2 &&
		(st.opts.Stringify.HeadingStyle == HeadingSetext || strings.Contains(content, "\n"))
	if useSetext {
		marker := "="
		if h.Level == 2 {
			marker = "-"
		}
		lines := strings.Split(content, "\n")
		width := utf8.RuneCountInString(lines[len(lines)-1])
		if width < 3 {
			width = 3
		}
		return content + "\n" + strings.Repeat(marker, width)
	}

	// ATX cannot contain newlines: hard breaks become spaces, remaining
	// newlines a character reference. Order matters, or the "\\\n" form
	// would be corrupted.
	content = strings.ReplaceAll(content, "\\\n", " ")
	content = strings.ReplaceAll(content, "\n", "&#xA;")

	// Leading whitespace would be stripped as insignificant on re-parse.
	if strings.HasPrefix(content, " ") {
		content = "&#x20;" + content[1:]
	} else if strings.HasPrefix(content, "\t") {
		content = "&#x9;" + content[1:]
	}

	content = escapeTrailingHashes(content)

	hashes := strings.Repeat("#", h.Level)
	if st.opts.Stringify.CloseATX {
		return hashes + " " + content + " " + hashes
	}
	return hashes + " " + content
}

// escapeTrailingHashes protects a trailing `#` run preceded by a space
// (or making up the whole content), which parsers would strip as an ATX
// closing sequence.
func escapeTrailingHashes(content string) string {
	if !strings.HasSuffix(content, "#") {
		return content
	}
	trimmed := strings.TrimRight(content, "#")
	if trimmed == "" || strings.HasSuffix(trimmed, " ") {
		return trimmed + "\\" + content[len(trimmed):]
	}
	return content
}

func (st *renderState) thematicBreak() string {
	o := st.opts.Stringify
	var b strings.Builder
	for i := 0; i < o.RuleRepetition; i++ {
		if o.RuleSpaces && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(o.Rule)
	}
	return b.String()
}

func (st *renderState) blockquote(q *Blockquote) string {
	content := st.flow(q.Children, "\n\n")
	if content == "" {
		return ">"
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

func (st *renderState) list(n *List) string {
	o := st.opts.Stringify
	oldBullet := st.bulletCurrent

	var delim string
	if n.Ordered {
		// Alternate `.`/`)` after a previous ordered list so parsers
		// don't merge the two into one.
		delim = o.BulletOrdered
		if st.orderedLastUsed != "" {
			if delim == "." {
				delim = ")"
			} else {
				delim = "."
			}
		}
	} else {
		bullet := o.Bullet
		if st.bulletLastUsed == bullet {
			if bullet == "*" {
				bullet = "-"
			} else {
				bullet = "*"
			}
		}
		st.bulletCurrent = bullet
	}

	start := n.Start
	if start < 1 {
		start = 1
	}

	items := make([]string, 0, len(n.Items))
	for i, item := range n.Items {
		var prefix string
		if n.Ordered {
			number := start
			if o.IncrementListMarker {
				number = start + i
			}
			prefix = strconv.Itoa(number) + delim
		} else {
			prefix = st.bulletCurrent
		}

		content := st.listItem(item, !n.Tight)
		// Reset per item so a nested list's bullet choice does not leak
		// into sibling items.
		st.bulletLastUsed = ""

		indent := 1
		if o.ListItemIndent == IndentMirror {
			indent = len(prefix) + 1
		}
		pad := strings.Repeat(" ", indent)

		lines := strings.Split(content, "\n")
		var b strings.Builder
		if lines[0] == "" {
			b.WriteString(prefix)
		} else {
			b.WriteString(prefix)
			b.WriteByte(' ')
			b.WriteString(lines[0])
		}
		for _, line := range lines[1:] {
			b.WriteByte('\n')
			if line != "" {
				b.WriteString(pad)
				b.WriteString(line)
			}
		}
		items = append(items, b.String())
	}

	if n.Ordered {
		st.orderedLastUsed = delim
	} else {
		st.bulletLastUsed = st.bulletCurrent
	}
	st.bulletCurrent = oldBullet

	sep := "\n"
	if !n.Tight {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

func (st *renderState) listItem(item *ListItem, spread bool) string {
	sep := "\n"
	if spread {
		sep = "\n\n"
	}
	content := st.flow(item.Children, sep)

	if tm := leadingTaskMarker(item); tm != nil {
		o := st.opts
		if o.Checked != "" && o.Unchecked != "" {
			box := "[" + o.Unchecked + "]"
			if tm.Checked {
				box = "[" + o.Checked + "]"
			}
			if content == "" {
				content = box
			} else {
				content = box + " " + content
			}
		}
	}

	return content
}

// leadingTaskMarker returns the task marker opening an item, if any.
func leadingTaskMarker(item *ListItem) *TaskMarker {
	if len(item.Children) == 0 {
		return nil
	}
	p, ok := item.Children[0].(*Paragraph)
	if !ok || len(p.Children) == 0 {
		return nil
	}
	tm, ok := p.Children[0].(*TaskMarker)
	if !ok {
		return nil
	}
	return tm
}

func (st *renderState) codeBlock(c *CodeBlock) string {
	o := st.opts.Stringify

	if !o.Fences && c.Lang == "" && canIndentCode(c.Text) {
		lines := strings.Split(c.Text, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = "    " + line
			}
		}
		return strings.Join(lines, "\n")
	}

	fenceChar := o.Fence
	// A backtick in the info string would close a backtick fence early.
	if strings.Contains(c.Lang, "`") && fenceChar == "`" {
		fenceChar = "~"
	}

	// The fence must be longer than any same-character run opening a line
	// of the content.
	max := 0
	for _, line := range strings.Split(c.Text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 3 && strings.Count(trimmed, fenceChar) == len(trimmed) {
			if len(trimmed) > max {
				max = len(trimmed)
			}
		}
	}
	size := max + 1
	if size < 3 {
		size = 3
	}
	fence := strings.Repeat(fenceChar, size)

	if c.Text == "" {
		return fence + c.Lang + "\n" + fence
	}
	return fence + c.Lang + "\n" + c.Text + "\n" + fence
}

// canIndentCode reports whether a code value survives the 4-space indented
// form: it must have non-whitespace content and no blank first or last
// line.
func canIndentCode(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	lines := strings.Split(value, "\n")
	if strings.TrimRight(lines[0], " \t") == "" {
		return false
	}
	if strings.TrimRight(lines[len(lines)-1], " \t") == "" {
		return false
	}
	return true
}

func (st *renderState) table(t *Table) string {
	if len(t.Rows) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			st.inTableCell = true
			content := st.phrasing(cell.Children)
			st.inTableCell = false
			content = strings.TrimSpace(content)
			content = strings.ReplaceAll(content, "\\\n", " ")
			content = strings.ReplaceAll(content, "\n", "&#xA;")
			cells = append(cells, content)
		}
		rows = append(rows, cells)
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 1
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	align := func(i int) Alignment {
		if i < len(t.Align) {
			return t.Align[i]
		}
		return AlignNone
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatTableRow(rows[0], widths, align))

	seps := make([]string, cols)
	for i := 0; i < cols; i++ {
		seps[i] = tableSeparator(widths[i], align(i))
	}
	lines = append(lines, "| "+strings.Join(seps, " | ")+" |")

	for _, row := range rows[1:] {
		lines = append(lines, formatTableRow(row, widths, align))
	}

	return strings.Join(lines, "\n")
}

func formatTableRow(cells []string, widths []int, align func(int) Alignment) string {
	padded := make([]string, len(widths))
	for i := range widths {
		content := ""
		if i < len(cells) {
			content = cells[i]
		}
		padded[i] = padTableCell(content, widths[i], align(i))
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

func padTableCell(content string, width int, align Alignment) string {
	padding := width - utf8.RuneCountInString(content)
	if padding < 0 {
		padding = 0
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", padding) + content
	case AlignCenter:
		left := (padding + 1) / 2
		return strings.Repeat(" ", left) + content + strings.Repeat(" ", padding-left)
	}
	return content + strings.Repeat(" ", padding)
}

func tableSeparator(width int, align Alignment) string {
	switch align {
	case AlignLeft:
		return ":" + strings.Repeat("-", maxInt(width-1, 1))
	case AlignRight:
		return strings.Repeat("-", maxInt(width-1, 1)) + ":"
	case AlignCenter:
		return ":" + strings.Repeat("-", maxInt(width-2, 1)) + ":"
	}
	return strings.Repeat("-", width)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// phrasing serializes inline children flush together.
func (st *renderState) phrasing(children []Inline) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		parts = append(parts, st.inline(c))
	}

	// Trim the spaces adjacent to hard breaks: trailing before, leading
	// after.
	for i, p := range parts {
		if p != "\\\n" {
			continue
		}
		if i > 0 {
			parts[i-1] = strings.TrimRight(parts[i-1], " ")
		}
		if i+1 < len(parts) {
			parts[i+1] = strings.TrimLeft(parts[i+1], " ")
		}
	}

	// A trailing `!` before a link or image would re-parse as image
	// syntax.
	for i := 0; i+1 < len(parts); i++ {
		if strings.HasPrefix(parts[i+1], "[") &&
			strings.HasSuffix(parts[i], "!") && !strings.HasSuffix(parts[i], "\\!") {
			parts[i] = parts[i][:len(parts[i])-1] + "\\!"
		}
	}

	return strings.Join(parts, "")
}

func (st *renderState) inline(n Inline) string {
	switch v := n.(type) {
	case *Text:
		return st.text(v)
	case *Emphasis:
		return st.emphasis(v)
	case *Strong:
		marker := st.opts.Stringify.Strong
		return marker + marker + st.phrasing(v.Children) + marker + marker
	case *Delete:
		return "~~" + st.phrasing(v.Children) + "~~"
	case *InlineCode:
		return st.inlineCode(v)
	case *Link:
		return st.link(v)
	case *Image:
		return st.image(v)
	case *LineBreak:
		return "\\\n"
	case *TaskMarker:
		// Rendered by the list item handler.
		return ""
	}
	return ""
}

func (st *renderState) text(t *Text) string {
	var escaped string
	if st.inLinkText {
		escaped = escapeLinkText(t.Text)
	} else {
		escaped = escapePhrasing(t.Text)
	}
	if st.inTableCell {
		escaped = strings.ReplaceAll(escaped, "|", "\\|")
	}
	if st.atBreak {
		st.atBreak = false
		escaped = escapeAtBreakStart(escaped)
	}
	return escaped
}

func (st *renderState) emphasis(e *Emphasis) string {
	marker := st.opts.Stringify.Emphasis
	content := st.phrasing(e.Children)

	// When the content begins or ends with exactly one instance of the
	// marker, wrapping with the same marker would read as strong. Switch
	// to the alternate delimiter. A doubled marker (inner strong) is left
	// alone: `***x***` parses as emphasis around strong.
	m := marker[0]
	startsSingle := len(content) > 0 && content[0] == m && (len(content) < 2 || content[1] != m)
	endsSingle := len(content) >= 2 && content[len(content)-1] == m && content[len(content)-2] != m
	if startsSingle || endsSingle {
		if marker == "*" {
			marker = "_"
		} else {
			marker = "*"
		}
	}
	return marker + content + marker
}

func (st *renderState) inlineCode(c *InlineCode) string {
	// A newline inside a code span could open a block construct on
	// re-parse.
	value := strings.ReplaceAll(c.Text, "\n", " ")

	fenceChar := st.opts.Stringify.Fence
	run := longestRun(value, fenceChar[0])
	marker := strings.Repeat(fenceChar, run+1)

	needsSpace := strings.HasPrefix(value, fenceChar) || strings.HasSuffix(value, fenceChar) ||
		(strings.HasPrefix(value, " ") && strings.HasSuffix(value, " ") && strings.TrimSpace(value) != "")
	if needsSpace {
		return marker + " " + value + " " + marker
	}
	return marker + value + marker
}

func longestRun(s string, c byte) int {
	max, current := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			current++
			if current > max {
				max = current
			}
		} else {
			current = 0
		}
	}
	return max
}

func (st *renderState) link(l *Link) string {
	st.inLinkText = true
	content := st.phrasing(l.Children)
	st.inLinkText = false
	content = strings.TrimLeft(content, " ")

	if st.linkAsAutolink(l, content) {
		return "<" + content + ">"
	}

	if l.Title != "" {
		return "[" + content + "](" + formatLinkURL(l.URL) + st.titleSegment(l.Title) + ")"
	}
	return "[" + content + "](" + formatLinkURL(l.URL) + ")"
}

// linkAsAutolink reports whether a link can use the `<url>` form: its text
// is exactly its destination (or its mailto form) and the destination is
// representable between angle brackets.
func (st *renderState) linkAsAutolink(l *Link, content string) bool {
	if st.opts.Stringify.ResourceLink || l.URL == "" || l.Title != "" {
		return false
	}
	if len(l.Children) != 1 {
		return false
	}
	if _, ok := l.Children[0].(*Text); !ok {
		return false
	}
	if content != l.URL && "mailto:"+content != l.URL {
		return false
	}
	if !strings.Contains(l.URL, ":") {
		return false
	}
	for _, r := range l.URL {
		if r <= ' ' || r == '<' || r == '>' || r == 0x7f {
			return false
		}
	}
	return true
}

func (st *renderState) image(img *Image) string {
	alt := escapeLinkText(img.Alt)
	if img.Title != "" {
		return "![" + alt + "](" + formatLinkURL(img.URL) + st.titleSegment(img.Title) + ")"
	}
	return "![" + alt + "](" + formatLinkURL(img.URL) + ")"
}

// titleSegment renders ` "title"` using the configured quote character.
// When the title contains that character, the Quotes fallback sequence is
// consulted for an alternate delimiter before resorting to escaping.
func (st *renderState) titleSegment(title string) string {
	delim := st.opts.Stringify.Quote
	if strings.Contains(title, delim) {
		for _, q := range st.opts.Quotes {
			if q == "" {
				continue
			}
			open := q[:1]
			if open != delim && !strings.Contains(title, open) {
				delim = open
				break
			}
		}
	}
	escaped := strings.ReplaceAll(title, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, delim, "\\"+delim)
	return " " + delim + escaped + delim
}

// formatLinkURL wraps a destination in angle brackets when it contains
// whitespace or unbalanced parentheses that would end the destination
// early.
func formatLinkURL(url string) string {
	depth := 0
	wrap := false
	for _, r := range url {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				wrap = true
			}
		case ' ', '\t', '\n', '<', '>':
			wrap = true
		}
	}
	if wrap || depth != 0 {
		return "<" + url + ">"
	}
	return url
}
