package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/htmlmd"
	"github.com/fwojciec/htmlmd/mock"
	htmlmdslog "github.com/fwojciec/htmlmd/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "# Hello\n", nil
			},
		}

		c := htmlmdslog.NewLoggingConverter(next, logger)

		out, err := c.Convert("<h1>Hello</h1>")
		require.NoError(t, err)
		assert.Equal(t, "# Hello\n", out)
		assert.Contains(t, buf.String(), "conversion")
		assert.Contains(t, buf.String(), "output_bytes=8")
	})

	t.Run("logs failures with the error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", htmlmd.Errorf(htmlmd.EINVALID, "bad option")
			},
		}

		c := htmlmdslog.NewLoggingConverter(next, logger)

		out, err := c.Convert("<p>x</p>")
		require.Error(t, err)
		assert.Empty(t, out)
		assert.Contains(t, buf.String(), "conversion failed")
		assert.Contains(t, buf.String(), "code=invalid")
	})

	t.Run("wraps the real converter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next, err := htmlmd.NewConverter(htmlmd.DefaultOptions())
		require.NoError(t, err)

		c := htmlmdslog.NewLoggingConverter(next, logger)

		out, err := c.Convert("<p>wrapped</p>")
		require.NoError(t, err)
		assert.Equal(t, "wrapped\n", out)
	})

	t.Run("passes non-coded errors through unchanged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		sentinel := errors.New("boom")
		next := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", sentinel
			},
		}

		c := htmlmdslog.NewLoggingConverter(next, logger)

		_, err := c.Convert("<p>x</p>")
		assert.ErrorIs(t, err, sentinel)
	})
}
