// Package goquery converts goquery documents and selections to Markdown.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlmd"
)

// Ensure Converter implements htmlmd.Converter at compile time.
var _ htmlmd.Converter = (*Converter)(nil)

// Converter converts goquery documents and selections to Markdown using a
// fixed set of options.
type Converter struct {
	opts htmlmd.Options
}

// NewConverter returns a Converter bound to the given options. The options
// are validated once, up front.
func NewConverter(opts htmlmd.Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Converter{opts: opts}, nil
}

// Convert parses HTML and converts it to Markdown.
func (c *Converter) Convert(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", htmlmd.Errorf(htmlmd.EINTERNAL, "failed to parse HTML: %v", err)
	}
	return c.ConvertDocument(doc)
}

// ConvertDocument converts a parsed goquery document to Markdown.
func (c *Converter) ConvertDocument(doc *goquery.Document) (string, error) {
	return htmlmd.ConvertNodes(doc.Nodes, c.opts)
}

// ConvertSelection converts the matched elements of a selection to
// Markdown, in document order. An empty selection yields empty output.
func (c *Converter) ConvertSelection(sel *goquery.Selection) (string, error) {
	return htmlmd.ConvertNodes(sel.Nodes, c.opts)
}
