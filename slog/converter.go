// Package slog provides log/slog decorators for htmlmd services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlmd"
)

// Ensure LoggingConverter implements htmlmd.Converter.
var _ htmlmd.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with structured logging. The wrapped
// converter stays silent; all observability lives here.
type LoggingConverter struct {
	next   htmlmd.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next htmlmd.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the outcome.
func (c *LoggingConverter) Convert(html string) (string, error) {
	begin := time.Now()
	out, err := c.next.Convert(html)
	if err != nil {
		c.logger.Error("conversion failed",
			"code", htmlmd.ErrorCode(err),
			"field", htmlmd.ErrorField(err),
			"error", htmlmd.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return "", err
	}
	c.logger.Info("conversion",
		"input_bytes", len(html),
		"output_bytes", len(out),
		"duration", time.Since(begin),
	)
	return out, nil
}
