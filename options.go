package htmlmd

import (
	"fmt"
	"strings"
)

// HeadingStyle selects the Markdown heading notation.
type HeadingStyle int

// Heading styles.
const (
	// HeadingATX emits `# Heading` (default).
	HeadingATX HeadingStyle = iota

	// HeadingSetext underlines h1/h2 with `=`/`-`; h3–h6 fall back to ATX.
	HeadingSetext
)

// ListItemIndent selects how continuation lines of a list item are indented.
type ListItemIndent int

// List item indentation styles.
const (
	// IndentOne indents continuation lines by a single space (default).
	IndentOne ListItemIndent = iota

	// IndentMirror indents continuation lines by the width of the emitted
	// marker plus its separating space, aligning them with the content.
	IndentMirror
)

// StringifyOptions configures the Markdown serializer. All fields have
// closed domains; use DefaultStringifyOptions for a valid starting point.
// Character fields hold single-character strings.
type StringifyOptions struct {
	HeadingStyle HeadingStyle `json:"headingStyle"`

	// Unordered list marker: "*", "-", or "+".
	Bullet string `json:"bullet"`

	// Ordered list marker suffix: "." or ")".
	BulletOrdered string `json:"bulletOrdered"`

	// Emphasis marker: "*" or "_".
	Emphasis string `json:"emphasis"`

	// Strong marker: "*" or "_".
	Strong string `json:"strong"`

	// Code fence character: "`" or "~".
	Fence string `json:"fence"`

	// Thematic break character: "*", "-", or "_".
	Rule string `json:"rule"`

	// Number of thematic break markers (minimum 3).
	RuleRepetition int `json:"ruleRepetition"`

	// Whether to space-separate thematic break markers.
	RuleSpaces bool `json:"ruleSpaces"`

	// Whether to close ATX headings with trailing hashes.
	CloseATX bool `json:"closeAtx"`

	ListItemIndent ListItemIndent `json:"listItemIndent"`

	// Whether ordered list markers increment (1., 2., 3.) or repeat the
	// start value (1., 1., 1.).
	IncrementListMarker bool `json:"incrementListMarker"`

	// Quote character for link and image titles: `"` or `'`.
	Quote string `json:"quote"`

	// Whether to use fenced code blocks rather than 4-space indented ones.
	Fences bool `json:"fences"`

	// Whether to always use the inline resource form for links, never
	// autolinks.
	ResourceLink bool `json:"resourceLink"`
}

// Options configures a conversion. It wraps the serializer options with
// the knobs consumed by the transformer.
type Options struct {
	Stringify StringifyOptions `json:"stringify"`

	// Whether to preserve line breaks found in the source text.
	Newlines bool `json:"newlines"`

	// Marker characters for rendered task-list checkboxes. Task-list
	// rendering only happens when both are set; items degrade to plain
	// list items otherwise.
	Checked   string `json:"checked"`
	Unchecked string `json:"unchecked"`

	// Quote characters cycled by nesting depth for <q> elements, and used
	// as the fallback sequence when a link title contains the primary
	// Quote character. Each entry is one or two characters: open, and
	// optionally close.
	Quotes []string `json:"quotes"`
}

// DefaultStringifyOptions returns the default serializer options.
func DefaultStringifyOptions() StringifyOptions {
	return StringifyOptions{
		HeadingStyle:        HeadingATX,
		Bullet:              "*",
		BulletOrdered:       ".",
		Emphasis:            "*",
		Strong:              "*",
		Fence:               "`",
		Rule:                "*",
		RuleRepetition:      3,
		RuleSpaces:          false,
		CloseATX:            false,
		ListItemIndent:      IndentOne,
		IncrementListMarker: true,
		Quote:               `"`,
		Fences:              true,
		ResourceLink:        false,
	}
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		Stringify: DefaultStringifyOptions(),
		Quotes:    []string{`"`},
	}
}

// Validate returns an EINVALID error naming the first option field whose
// value falls outside its domain. Fields are checked independently, in a
// fixed order; no combination of valid fields is ever rejected.
func (o StringifyOptions) Validate() error {
	if o.HeadingStyle != HeadingATX && o.HeadingStyle != HeadingSetext {
		return optionError("heading_style", "atx, setext", int(o.HeadingStyle))
	}
	if err := validateChar("bullet", o.Bullet, "*", "-", "+"); err != nil {
		return err
	}
	if err := validateChar("bullet_ordered", o.BulletOrdered, ".", ")"); err != nil {
		return err
	}
	if err := validateChar("emphasis", o.Emphasis, "*", "_"); err != nil {
		return err
	}
	if err := validateChar("strong", o.Strong, "*", "_"); err != nil {
		return err
	}
	if err := validateChar("fence", o.Fence, "`", "~"); err != nil {
		return err
	}
	if err := validateChar("rule", o.Rule, "*", "-", "_"); err != nil {
		return err
	}
	if o.RuleRepetition < 3 {
		return optionError("rule_repetition", "3 or more", o.RuleRepetition)
	}
	if o.ListItemIndent != IndentOne && o.ListItemIndent != IndentMirror {
		return optionError("list_item_indent", "one, mirror", int(o.ListItemIndent))
	}
	if err := validateChar("quote", o.Quote, `"`, "'"); err != nil {
		return err
	}
	return nil
}

// Validate returns an EINVALID error if any option field is out of its
// domain. It must pass before any output is produced.
func (o Options) Validate() error {
	return o.Stringify.Validate()
}

// validateChar checks that value is exactly one of the allowed
// single-character strings. The empty string fails the membership test.
func validateChar(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return optionError(field, quoteList(allowed), value)
}

func optionError(field, allowed string, value any) *Error {
	return &Error{
		Code:    EINVALID,
		Field:   field,
		Message: fmt.Sprintf("%s must be one of %s, got %q", field, allowed, fmt.Sprint(value)),
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
