package htmlmd

import (
	"strings"

	"golang.org/x/net/html"
)

// Convert converts HTML to Markdown using default options. It never
// fails: the defaults are always valid, unsupported markup degrades to
// its content, and empty input yields empty output.
func Convert(src string) string {
	out, _ := ConvertWith(src, DefaultOptions())
	return out
}

// ConvertWith converts HTML to Markdown under the given options. Options
// are validated before any other work happens; an EINVALID error naming
// the offending field is returned and no output is produced when
// validation fails. With DefaultOptions the output is identical to
// Convert.
func ConvertWith(src string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", Errorf(EINTERNAL, "failed to parse HTML: %v", err)
	}
	return render(transform(root, opts), opts), nil
}

// ConvertNode converts an already parsed HTML tree to Markdown. The node
// may be a document, an element, or any fragment subtree.
func ConvertNode(n *html.Node, opts Options) (string, error) {
	return ConvertNodes([]*html.Node{n}, opts)
}

// ConvertNodes converts a sequence of parsed HTML trees into a single
// Markdown document, in order.
func ConvertNodes(nodes []*html.Node, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	t := &transformer{opts: opts}
	var all []Node
	for _, n := range nodes {
		all = append(all, t.one(n)...)
	}
	doc := &Document{Children: wrapBlocks(all)}
	normalizeWhitespace(doc)
	return render(doc, opts), nil
}

// Transform parses HTML and returns its Markdown document tree without
// serializing it. The tree is immutable once returned and may be rendered
// repeatedly with different options.
func Transform(src string, opts Options) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, Errorf(EINTERNAL, "failed to parse HTML: %v", err)
	}
	return transform(root, opts), nil
}

// Render serializes a Markdown document tree under the given options.
func Render(doc *Document, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return render(doc, opts), nil
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// Ensure the options-bound converter implements Converter at compile time.
var _ Converter = (*optionsConverter)(nil)

// optionsConverter is a Converter bound to a validated set of options.
type optionsConverter struct {
	opts Options
}

// NewConverter returns a Converter bound to the given options. The
// options are validated once, up front, and reused for every call.
func NewConverter(opts Options) (Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &optionsConverter{opts: opts}, nil
}

// Convert transforms HTML content into Markdown.
func (c *optionsConverter) Convert(src string) (string, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", Errorf(EINTERNAL, "failed to parse HTML: %v", err)
	}
	return render(transform(root, c.opts), c.opts), nil
}
