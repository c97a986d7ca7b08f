package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which strategy selected
// the content region.
type LoggingExtractor struct {
	next   pagemd.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagemd.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string) (doc *pagemd.ParsedDocument, err error) {
	defer func(begin time.Time) {
		var strategy string
		var content int
		if doc != nil {
			strategy = doc.Strategy
			content = len(doc.ContentHTML)
		}
		e.logger.Info("extract",
			"strategy", strategy,
			"bytes", len(html),
			"content", content,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
