// Package slog provides log/slog decorators for engram services.
package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/engram"
)

// Ensure LoggingFetcher implements engram.Fetcher.
var _ engram.Fetcher = (*LoggingFetcher)(nil)

// browserFetcher is implemented by fetchers that render pages in a
// restartable browser.
type browserFetcher interface {
	Snapshots() int64
	Restarts() int
}

// LoggingFetcher wraps a Fetcher with logging of each captured page: its
// size, how many layout hints the fetcher snapshotted into it and, for
// browser fetchers, the browser's snapshot and restart counters.
type LoggingFetcher struct {
	next   engram.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next engram.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the result.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"layout_hints", strings.Count(html, engram.LayoutAttributePrefix),
			"duration", time.Since(begin),
		}
		if b, ok := f.next.(browserFetcher); ok {
			attrs = append(attrs, "snapshots", b.Snapshots(), "restarts", b.Restarts())
		}
		if err != nil {
			f.logger.Warn("fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
