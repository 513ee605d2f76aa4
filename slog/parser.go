package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/nerview"
)

// Ensure LoggingParser implements nerview.SpanParser.
var _ nerview.SpanParser = (*LoggingParser)(nil)

// LoggingParser wraps a SpanParser with debug logging.
type LoggingParser struct {
	next   nerview.SpanParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next nerview.SpanParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the span count.
func (p *LoggingParser) Parse(html string) (spans []nerview.EntitySpan, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(html),
			"spans", len(spans),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html)
}
