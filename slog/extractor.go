package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/engram"
)

// Ensure LoggingExtractor implements engram.Extractor.
var _ engram.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which strategy produced the
// transcript.
type LoggingExtractor struct {
	next   engram.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next engram.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(doc engram.Document, source engram.ContainerSource) (result *engram.Extraction) {
	defer func(begin time.Time) {
		strategy := "(none)"
		count := 0
		if result != nil {
			if result.Strategy != "" {
				strategy = string(result.Strategy)
			}
			count = len(result.Messages)
		}
		e.logger.Info("extract",
			"url", documentURL(doc),
			"strategy", strategy,
			"messages", count,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(doc, source)
}

// documentURL returns the URL of doc, or "" for a nil document.
func documentURL(doc engram.Document) string {
	if doc == nil {
		return ""
	}
	return doc.URL()
}
