package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/engram/mock"
	engramslog "github.com/fwojciec/engram/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browserFetcher is a mock fetcher exposing browser counters.
type browserFetcher struct {
	mock.Fetcher
	snapshots int64
	restarts  int
}

func (f *browserFetcher) Snapshots() int64 { return f.snapshots }
func (f *browserFetcher) Restarts() int    { return f.restarts }

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs size and snapshotted layout hints", func(t *testing.T) {
		t.Parallel()

		const page = `<div data-engram-justify-content="flex-end">Hi</div>` +
			`<div data-engram-margin-left="48px">Hello</div>`

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return page, nil
			},
		}

		fetcher := engramslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://claude.ai/chat/123")

		require.NoError(t, err)
		assert.Equal(t, page, html)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://claude.ai/chat/123")
		assert.Contains(t, output, "layout_hints=2")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "restarts=")
	})

	t.Run("logs browser counters when the fetcher renders in a browser", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &browserFetcher{snapshots: 76, restarts: 1}
		inner.FetchFn = func(ctx context.Context, url string) (string, error) {
			return "<html></html>", nil
		}

		fetcher := engramslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://chatgpt.com/c/abc")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "layout_hints=0")
		assert.Contains(t, output, "snapshots=76")
		assert.Contains(t, output, "restarts=1")
	})

	t.Run("logs failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := engramslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://claude.ai/chat/123")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := engramslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
