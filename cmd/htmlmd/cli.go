package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fwojciec/htmlmd"
	"github.com/fwojciec/htmlmd/fs"
	htmlmdslog "github.com/fwojciec/htmlmd/slog"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Paths []string `arg:"" optional:"" help:"HTML files to convert. Reads stdin when omitted."`

	Out     string `short:"o" placeholder:"DIR" help:"Write .md files into DIR instead of stdout"`
	Verbose bool   `short:"v" help:"Log conversions to stderr"`

	Setext         bool   `help:"Use setext headings for levels 1 and 2"`
	CloseATX       bool   `name:"close-atx" help:"Close ATX headings with trailing #"`
	Bullet         string `default:"*" enum:"*,-,+" help:"Unordered list marker"`
	BulletOrdered  string `name:"bullet-ordered" default:"." enum:".,)" help:"Ordered list delimiter"`
	Emphasis       string `default:"*" enum:"*,_" help:"Emphasis marker"`
	Strong         string `default:"*" enum:"*,_" help:"Strong marker"`
	Tilde          bool   `help:"Fence code blocks with ~"`
	NoFences       bool   `name:"no-fences" help:"Indent code blocks instead of fencing"`
	Rule           string `default:"*" enum:"*,-,_" help:"Thematic break character"`
	RuleRepetition int    `name:"rule-repetition" default:"3" help:"Thematic break character count"`
	RuleSpaces     bool   `name:"rule-spaces" help:"Space-separate thematic break characters"`
	IndentMirror   bool   `name:"indent-mirror" help:"Indent list continuations to the marker width"`
	NoIncrement    bool   `name:"no-increment" help:"Repeat the start number for every ordered item"`
	Quote          string `default:"\"" enum:"\",'" help:"Link title quote character"`
	ResourceLinks  bool   `name:"resource-links" help:"Always use [text](url), never autolinks"`
	Newlines       bool   `help:"Preserve line breaks from the source"`
	Checked        string `help:"Checkbox marker for checked task items"`
	Unchecked      string `help:"Checkbox marker for unchecked task items"`
}

// options maps the parsed flags onto conversion options.
func (c *CLI) options() htmlmd.Options {
	opts := htmlmd.DefaultOptions()
	if c.Setext {
		opts.Stringify.HeadingStyle = htmlmd.HeadingSetext
	}
	opts.Stringify.CloseATX = c.CloseATX
	opts.Stringify.Bullet = c.Bullet
	opts.Stringify.BulletOrdered = c.BulletOrdered
	opts.Stringify.Emphasis = c.Emphasis
	opts.Stringify.Strong = c.Strong
	if c.Tilde {
		opts.Stringify.Fence = "~"
	}
	opts.Stringify.Fences = !c.NoFences
	opts.Stringify.Rule = c.Rule
	opts.Stringify.RuleRepetition = c.RuleRepetition
	opts.Stringify.RuleSpaces = c.RuleSpaces
	if c.IndentMirror {
		opts.Stringify.ListItemIndent = htmlmd.IndentMirror
	}
	opts.Stringify.IncrementListMarker = !c.NoIncrement
	opts.Stringify.Quote = c.Quote
	opts.Stringify.ResourceLink = c.ResourceLinks
	opts.Newlines = c.Newlines
	opts.Checked = c.Checked
	opts.Unchecked = c.Unchecked
	return opts
}

func (c *CLI) run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	var conv htmlmd.Converter
	conv, err := htmlmd.NewConverter(c.options())
	if err != nil {
		return err
	}
	if c.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		conv = htmlmdslog.NewLoggingConverter(conv, logger)
	}

	var writer *fs.Writer
	if c.Out != "" {
		writer = fs.NewWriter(c.Out)
	}

	emit := func(name, markdown string) error {
		if writer != nil {
			_, err := writer.WritePage(name, markdown)
			return err
		}
		_, err := io.WriteString(stdout, markdown)
		return err
	}

	if len(c.Paths) == 0 {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		out, err := conv.Convert(string(src))
		if err != nil {
			return err
		}
		return emit("-", out)
	}

	for _, path := range c.Paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, err := conv.Convert(string(src))
		if err != nil {
			return err
		}
		if err := emit(path, out); err != nil {
			return err
		}
	}
	return nil
}
