package htmlmd

// Node is a node in the Markdown document tree built by the transformer
// and consumed by the serializer. The set of kinds is closed: every node
// is either a Block or an Inline, and trees are never mutated once built,
// so the same tree may be serialized repeatedly with different options.
type Node interface {
	node()
}

// Block is a block-level node. Blocks never nest inside inlines.
type Block interface {
	Node
	block()
}

// Inline is an inline (phrasing) node.
type Inline interface {
	Node
	inline()
}

// Alignment of a table column, taken from the source markup.
type Alignment int

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Document is the root of the tree.
type Document struct {
	Children []Block
}

// Heading is an ATX or setext heading. Level is always in [1,6].
type Heading struct {
	Level    int
	Children []Inline
}

// Paragraph holds a run of inline content.
type Paragraph struct {
	Children []Inline
}

// Blockquote wraps block children quoted with `> `.
type Blockquote struct {
	Children []Block
}

// List is an ordered or unordered list. Start is only meaningful when
// Ordered. A tight list renders without blank lines between its items.
type List struct {
	Ordered bool
	Start   int
	Tight   bool
	Items   []*ListItem
}

// ListItem is an item inside a List.
type ListItem struct {
	Children []Block
}

// CodeBlock is a fenced or indented code block. Text is verbatim.
type CodeBlock struct {
	Lang string
	Text string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Table holds rows of cells. The first row is the header row.
type Table struct {
	Align []Alignment
	Rows  []*TableRow
}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Cells []*TableCell
}

// TableCell holds a cell's inline content.
type TableCell struct {
	Children []Inline
}

// HTML is raw HTML emitted verbatim (comments, principally).
type HTML struct {
	Text string
}

// Text is plain text.
type Text struct {
	Text string
}

// Emphasis is emphasized content (`*text*` or `_text_`).
type Emphasis struct {
	Children []Inline
}

// Strong is strongly emphasized content (`**text**` or `__text__`).
type Strong struct {
	Children []Inline
}

// Delete is struck-through content (`~~text~~`).
type Delete struct {
	Children []Inline
}

// InlineCode is a code span. Text is verbatim.
type InlineCode struct {
	Text string
}

// Link is a hyperlink. An empty Title is omitted from output.
type Link struct {
	URL      string
	Title    string
	Children []Inline
}

// Image has no children; Alt carries the replacement text.
type Image struct {
	URL   string
	Alt   string
	Title string
}

// LineBreak is a hard line break.
type LineBreak struct{}

// TaskMarker is a task-list checkbox. It only appears as the first inline
// of a list item whose source encoded a checkbox.
type TaskMarker struct {
	Checked bool
}

func (*Document) node()      {}
func (*Heading) node()       {}
func (*Paragraph) node()     {}
func (*Blockquote) node()    {}
func (*List) node()          {}
func (*ListItem) node()      {}
func (*CodeBlock) node()     {}
func (*ThematicBreak) node() {}
func (*Table) node()         {}
func (*TableRow) node()      {}
func (*TableCell) node()     {}
func (*HTML) node()          {}
func (*Text) node()          {}
func (*Emphasis) node()      {}
func (*Strong) node()        {}
func (*Delete) node()        {}
func (*InlineCode) node()    {}
func (*Link) node()          {}
func (*Image) node()         {}
func (*LineBreak) node()     {}
func (*TaskMarker) node()    {}

func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*Blockquote) block()    {}
func (*List) block()          {}
func (*CodeBlock) block()     {}
func (*ThematicBreak) block() {}
func (*Table) block()         {}
func (*HTML) block()          {}

func (*Text) inline()       {}
func (*Emphasis) inline()   {}
func (*Strong) inline()     {}
func (*Delete) inline()     {}
func (*InlineCode) inline() {}
func (*Link) inline()       {}
func (*Image) inline()      {}
func (*LineBreak) inline()  {}
func (*TaskMarker) inline() {}
