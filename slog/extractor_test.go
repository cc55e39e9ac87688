package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/mock"
	engramslog "github.com/fwojciec/engram/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs strategy and message count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &engram.Extraction{
			Strategy: engram.StrategyAttribute,
			Messages: []engram.Message{
				{Role: engram.RoleUser, Content: "Hello there"},
				{Role: engram.RoleAssistant, Content: "Hi, how can I help?"},
			},
		}
		inner := &mock.Extractor{
			ExtractFn: func(doc engram.Document, source engram.ContainerSource) *engram.Extraction {
				return want
			},
		}

		extractor := engramslog.NewLoggingExtractor(inner, logger)
		got := extractor.Extract(newDoc("https://chatgpt.com/c/1"), nil)

		require.Same(t, want, got)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "strategy=attribute")
		assert.Contains(t, output, "messages=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs empty transcript without strategy", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(doc engram.Document, source engram.ContainerSource) *engram.Extraction {
				return &engram.Extraction{Messages: []engram.Message{}}
			},
		}

		extractor := engramslog.NewLoggingExtractor(inner, logger)
		extractor.Extract(newDoc("https://example.com"), nil)

		output := buf.String()
		assert.Contains(t, output, "strategy=(none)")
		assert.Contains(t, output, "messages=0")
	})

	t.Run("tolerates a nil document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(doc engram.Document, source engram.ContainerSource) *engram.Extraction {
				return &engram.Extraction{}
			},
		}

		extractor := engramslog.NewLoggingExtractor(inner, logger)

		require.NotPanics(t, func() { extractor.Extract(nil, nil) })
		assert.Contains(t, buf.String(), "url=\"\"")
	})
}
