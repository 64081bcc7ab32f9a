package htmlmd_test

import (
	"testing"

	"github.com/fwojciec/htmlmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, htmlmd.DefaultOptions().Validate())
	})

	t.Run("rejects out-of-domain values per field", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			field  string
			mutate func(*htmlmd.StringifyOptions)
		}{
			{"heading_style", func(o *htmlmd.StringifyOptions) { o.HeadingStyle = htmlmd.HeadingStyle(7) }},
			{"bullet", func(o *htmlmd.StringifyOptions) { o.Bullet = "x" }},
			{"bullet", func(o *htmlmd.StringifyOptions) { o.Bullet = "" }},
			{"bullet", func(o *htmlmd.StringifyOptions) { o.Bullet = "**" }},
			{"bullet_ordered", func(o *htmlmd.StringifyOptions) { o.BulletOrdered = "*" }},
			{"bullet_ordered", func(o *htmlmd.StringifyOptions) { o.BulletOrdered = "" }},
			{"emphasis", func(o *htmlmd.StringifyOptions) { o.Emphasis = "-" }},
			{"strong", func(o *htmlmd.StringifyOptions) { o.Strong = "~" }},
			{"fence", func(o *htmlmd.StringifyOptions) { o.Fence = "'" }},
			{"rule", func(o *htmlmd.StringifyOptions) { o.Rule = "=" }},
			{"rule_repetition", func(o *htmlmd.StringifyOptions) { o.RuleRepetition = 2 }},
			{"rule_repetition", func(o *htmlmd.StringifyOptions) { o.RuleRepetition = 0 }},
			{"list_item_indent", func(o *htmlmd.StringifyOptions) { o.ListItemIndent = htmlmd.ListItemIndent(-1) }},
			{"quote", func(o *htmlmd.StringifyOptions) { o.Quote = "`" }},
			{"quote", func(o *htmlmd.StringifyOptions) { o.Quote = "" }},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.field, func(t *testing.T) {
				t.Parallel()

				opts := htmlmd.DefaultOptions()
				tt.mutate(&opts.Stringify)

				err := opts.Validate()
				require.Error(t, err)
				assert.Equal(t, htmlmd.EINVALID, htmlmd.ErrorCode(err))
				assert.Equal(t, tt.field, htmlmd.ErrorField(err))
			})
		}
	})

	t.Run("reports the first invalid field in declaration order", func(t *testing.T) {
		t.Parallel()

		opts := htmlmd.DefaultOptions()
		opts.Stringify.Bullet = "x"
		opts.Stringify.Quote = "x"

		err := opts.Validate()
		require.Error(t, err)
		assert.Equal(t, "bullet", htmlmd.ErrorField(err))
	})

	t.Run("accepts every member of each domain", func(t *testing.T) {
		t.Parallel()

		for _, bullet := range []string{"*", "-", "+"} {
			for _, delim := range []string{".", ")"} {
				opts := htmlmd.DefaultOptions()
				opts.Stringify.Bullet = bullet
				opts.Stringify.BulletOrdered = delim
				assert.NoError(t, opts.Validate())
			}
		}
		for _, marker := range []string{"*", "_"} {
			opts := htmlmd.DefaultOptions()
			opts.Stringify.Emphasis = marker
			opts.Stringify.Strong = marker
			assert.NoError(t, opts.Validate())
		}
		for _, fence := range []string{"`", "~"} {
			opts := htmlmd.DefaultOptions()
			opts.Stringify.Fence = fence
			assert.NoError(t, opts.Validate())
		}
		for _, rule := range []string{"*", "-", "_"} {
			opts := htmlmd.DefaultOptions()
			opts.Stringify.Rule = rule
			assert.NoError(t, opts.Validate())
		}
		for _, quote := range []string{`"`, "'"} {
			opts := htmlmd.DefaultOptions()
			opts.Stringify.Quote = quote
			assert.NoError(t, opts.Validate())
		}
		for _, style := range []htmlmd.HeadingStyle{htmlmd.HeadingATX, htmlmd.HeadingSetext} {
			opts := htmlmd.DefaultOptions()
			opts.Stringify.HeadingStyle = style
			assert.NoError(t, opts.Validate())
		}
		for _, indent := range []htmlmd.ListItemIndent{htmlmd.IndentOne, htmlmd.IndentMirror} {
			opts := htmlmd.DefaultOptions()
			opts.Stringify.ListItemIndent = indent
			assert.NoError(t, opts.Validate())
		}
	})
}

func TestConvertWith_ValidatesBeforeConverting(t *testing.T) {
	t.Parallel()

	opts := htmlmd.DefaultOptions()
	opts.Stringify.RuleRepetition = 1

	out, err := htmlmd.ConvertWith("<p>hi</p>", opts)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, htmlmd.EINVALID, htmlmd.ErrorCode(err))
	assert.Equal(t, "rule_repetition", htmlmd.ErrorField(err))
}
