package htmlmd

import "strings"

// wrapBlocks resolves mixed phrasing/block content: runs of inline nodes
// between blocks are wrapped into implicit paragraphs, whitespace-only
// runs are discarded, and block nodes pass through unchanged.
func wrapBlocks(nodes []Node) []Block {
	var out []Block
	var run []Inline

	flush := func() {
		run = trimRun(run)
		if len(run) > 0 {
			out = append(out, &Paragraph{Children: run})
		}
		run = nil
	}

	for _, n := range nodes {
		switch v := n.(type) {
		case Inline:
			run = append(run, v)
		case Block:
			flush()
			out = append(out, v)
		}
	}
	flush()

	return out
}

// trimRun drops leading and trailing line breaks and whitespace-only text
// from a phrasing run.
func trimRun(run []Inline) []Inline {
	for len(run) > 0 && droppableEdge(run[0]) {
		run = run[1:]
	}
	for len(run) > 0 && droppableEdge(run[len(run)-1]) {
		run = run[:len(run)-1]
	}
	return run
}

func droppableEdge(n Inline) bool {
	switch v := n.(type) {
	case *LineBreak:
		return true
	case *Text:
		return strings.TrimSpace(v.Text) == ""
	}
	return false
}
