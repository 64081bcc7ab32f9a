package htmlmd

import "strings"

// collapseWhitespace collapses whitespace runs to a single space. When
// newlines is true, runs containing a line break collapse to "\n" instead,
// preserving the break.
func collapseWhitespace(s string, newlines bool) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	runHasNewline := false
	flush := func() {
		if !inRun {
			return
		}
		if newlines && runHasNewline {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inRun = false
		runHasNewline = false
	}

	for _, r := range s {
		switch r {
		case ' ', '\t', '\f':
			inRun = true
		case '\n', '\r':
			inRun = true
			runHasNewline = true
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()

	return b.String()
}

// normalizeWhitespace runs the whitespace post-processing pass over a
// freshly built tree: adjacent text nodes are merged, empty text nodes
// removed, and content edges of headings, paragraphs, and table cells
// trimmed.
func normalizeWhitespace(doc *Document) {
	normalizeBlocks(doc.Children)
}

func normalizeBlocks(blocks []Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case *Heading:
			v.Children = normalizeInlines(v.Children, true)
		case *Paragraph:
			v.Children = normalizeInlines(v.Children, true)
		case *Blockquote:
			normalizeBlocks(v.Children)
		case *List:
			for _, item := range v.Items {
				normalizeBlocks(item.Children)
			}
		case *Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					cell.Children = normalizeInlines(cell.Children, true)
				}
			}
		}
	}
}

// normalizeInlines merges adjacent text nodes and drops empty ones.
// When trim is set the container's leading and trailing whitespace is
// removed, as is the space following a leading task marker.
func normalizeInlines(in []Inline, trim bool) []Inline {
	for _, n := range in {
		switch v := n.(type) {
		case *Emphasis:
			v.Children = normalizeInlines(v.Children, false)
		case *Strong:
			v.Children = normalizeInlines(v.Children, false)
		case *Delete:
			v.Children = normalizeInlines(v.Children, true)
		case *Link:
			v.Children = normalizeInlines(v.Children, false)
		}
	}

	merged := make([]Inline, 0, len(in))
	for _, n := range in {
		if t, ok := n.(*Text); ok {
			if t.Text == "" {
				continue
			}
			if len(merged) > 0 {
				if prev, ok := merged[len(merged)-1].(*Text); ok {
					prev.Text += t.Text
					continue
				}
			}
		}
		merged = append(merged, n)
	}

	if !trim || len(merged) == 0 {
		return merged
	}

	first := 0
	if _, ok := merged[0].(*TaskMarker); ok {
		first = 1
	}
	if first < len(merged) {
		if t, ok := merged[first].(*Text); ok {
			t.Text = strings.TrimLeft(t.Text, " \t\n\r")
		}
	}
	if t, ok := merged[len(merged)-1].(*Text); ok {
		t.Text = strings.TrimRight(t.Text, " \t\n\r")
	}

	out := merged[:0]
	for _, n := range merged {
		if t, ok := n.(*Text); ok && t.Text == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
