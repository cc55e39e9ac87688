// Package capture orchestrates conversation capture. It coordinates
// fetching, parsing, platform detection, extraction and storage of chat
// sessions.
package capture

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of concurrent captures in CaptureAll.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate sizes the bloom filter in front of the exact
// duplicate check.
const dedupeFalsePositiveRate = 0.001

// Capturer orchestrates the capture of chat conversations.
type Capturer struct {
	Fetcher     engram.Fetcher
	Parser      engram.DocumentParser
	Registry    engram.PlatformRegistry
	Extractor   engram.Extractor
	Sessions    engram.SessionService
	RateLimiter engram.DomainLimiter

	// Platform forces the container source of a platform instead of
	// detecting it from the document. Zero means detect.
	Platform engram.Platform

	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc

	// Now returns the capture time. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a batch capture.
type Result struct {
	Saved    int
	Failed   int
	Skipped  int
	Messages int
	Sessions []*engram.Session
}

// ProgressEvent reports progress during a batch capture.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Session   *engram.Session
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting capture progress.
type ProgressFunc func(event ProgressEvent)

// Capture fetches the chat page at rawURL and stores its conversation.
// Returns ENOTFOUND if the page holds no recognizable conversation.
func (c *Capturer) Capture(ctx context.Context, rawURL string) (*engram.Session, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, engram.Errorf(engram.EINVALID, "invalid URL: %s", rawURL)
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, c.Logger, delays)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	return c.CaptureHTML(ctx, rawURL, html)
}

// CaptureHTML extracts and stores the conversation of an already available
// page, such as a saved HTML file. The URL is recorded with the session and
// used for platform detection; it may be empty.
func (c *Capturer) CaptureHTML(ctx context.Context, rawURL, html string) (*engram.Session, error) {
	doc, err := c.Parser.Parse(rawURL, html)
	if err != nil {
		return nil, err
	}

	platform, source := c.resolve(doc)

	extraction := c.Extractor.Extract(doc, source)
	if extraction == nil || len(extraction.Messages) == 0 {
		return nil, engram.Errorf(engram.ENOTFOUND, "no conversation found")
	}

	session := engram.AssembleSession(extraction.Messages, platform, doc, c.now())
	if err := c.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CaptureAll captures every URL concurrently. Duplicate URLs are skipped
// and per-URL failures are counted without aborting the batch. The progress
// callback, if provided, receives events as capturing proceeds.
func (c *Capturer) CaptureAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var result Result

	unique := dedupe(urls, func(u string) {
		result.Skipped++
		notify(progress, ProgressEvent{Type: ProgressSkipped, URL: u})
	})

	total := len(unique)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	type captureResult struct {
		position int
		url      string
		session  *engram.Session
		err      error
	}
	resultCh := make(chan captureResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range unique {
			g.Go(func() error {
				session, err := c.Capture(gctx, u)
				resultCh <- captureResult{position: i, url: u, session: session, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	sessions := make([]*engram.Session, total)
	for r := range resultCh {
		done := int(completed.Add(1))
		if r.err != nil {
			result.Failed++
			notify(progress, ProgressEvent{
				Type:      ProgressFailed,
				Completed: done,
				Total:     total,
				URL:       r.url,
				Error:     r.err,
			})
			continue
		}
		result.Saved++
		result.Messages += len(r.session.Messages)
		sessions[r.position] = r.session
		notify(progress, ProgressEvent{
			Type:      ProgressCompleted,
			Completed: done,
			Total:     total,
			URL:       r.url,
			Session:   r.session,
		})
	}

	for _, s := range sessions {
		if s != nil {
			result.Sessions = append(result.Sessions, s)
		}
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// dedupe returns urls without repeats, in order, calling skip for each
// repeat. The bloom filter only short-circuits first sightings; a hit is
// confirmed against the exact set so a false positive never drops a URL.
func dedupe(urls []string, skip func(string)) []string {
	filter := bloom.NewFilter(uint(max(len(urls), 1)), dedupeFalsePositiveRate)
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if filter.Test(u) {
			if _, dup := seen[u]; dup {
				skip(u)
				continue
			}
		}
		filter.Add(u)
		seen[u] = struct{}{}
		unique = append(unique, u)
	}
	return unique
}

// resolve picks the platform and container source for doc, honoring a
// forced platform.
func (c *Capturer) resolve(doc engram.Document) (engram.Platform, engram.ContainerSource) {
	if c.Platform != engram.PlatformUnknown {
		if source := c.Registry.Get(c.Platform); source != nil {
			return c.Platform, source
		}
	}
	return c.Registry.GetForDocument(doc)
}

func (c *Capturer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
