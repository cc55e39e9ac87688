package main

import (
	"context"

	"github.com/fwojciec/engram"
)

// BrowserFunc starts a browser fetcher on demand.
type BrowserFunc func() (engram.Fetcher, error)

// ProbeFetcher fetches sourceURL over plain HTTP and decides whether a
// browser is needed to capture it. Shared and server-rendered pages already
// carry the conversation in their HTML; live chat apps render it with
// JavaScript.
//
// Decision flow:
//   - HTTP fetch fails → browser
//   - HTTP page yields a conversation → HTTP
//   - otherwise → browser
//
// The browser is only started when it is chosen.
func ProbeFetcher(
	ctx context.Context,
	sourceURL string,
	httpFetcher engram.Fetcher,
	browser BrowserFunc,
	parser engram.DocumentParser,
	registry engram.PlatformRegistry,
	extractor engram.Extractor,
) (engram.Fetcher, error) {
	html, err := httpFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return browser()
	}

	doc, err := parser.Parse(sourceURL, html)
	if err != nil {
		return browser()
	}

	_, source := registry.GetForDocument(doc)
	if extraction := extractor.Extract(doc, source); extraction != nil && len(extraction.Messages) > 0 {
		return httpFetcher, nil
	}

	return browser()
}
