// Package rod provides a browser-based implementation of engram.Fetcher
// using github.com/go-rod/rod. It renders JavaScript chat applications and
// snapshots the computed layout signals used for role inference.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/engram"
)

// DefaultFetchTimeout bounds a single page fetch including rendering.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRenderDelay is how long to wait after load for a chat application
// to hydrate its transcript.
const DefaultRenderDelay = 2 * time.Second

// snapshotLayout copies computed style properties into data attributes so
// they survive serialization. Browser defaults are skipped.
const snapshotLayout = `(prefix, props) => {
	const defaults = new Set(["", "normal", "0px", "auto 0px"]);
	for (const el of document.querySelectorAll("body *")) {
		const style = window.getComputedStyle(el);
		for (const prop of props) {
			const value = style.getPropertyValue(prop).trim();
			if (!defaults.has(value)) {
				el.setAttribute(prefix + prop, value);
			}
		}
	}
}`

// Ensure Fetcher implements engram.Fetcher at compile time.
var _ engram.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The returned HTML carries a layout snapshot: every element whose computed
// justify-content or margin-left differs from the default gets a
// data-engram-* attribute with the computed value.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	chrome       *chrome
	fetchTimeout time.Duration
	renderDelay  time.Duration
	recycleAfter int64
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout of a single fetch.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRenderDelay sets how long to wait after the load event before
// snapshotting the page. Defaults to DefaultRenderDelay.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithBrowserRecycling sets the number of snapshotted pages after which
// Chrome is restarted. Zero disables restarts.
// Defaults to DefaultSnapshotsPerBrowser.
func WithBrowserRecycling(snapshots int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = snapshots
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		renderDelay:  DefaultRenderDelay,
		recycleAfter: DefaultSnapshotsPerBrowser,
	}
	for _, opt := range opts {
		opt(f)
	}

	c, err := launchChrome(f.recycleAfter)
	if err != nil {
		return nil, err
	}
	f.chrome = c

	return f, nil
}

// Fetch navigates to the URL, waits for the chat to render and returns the
// HTML with a layout snapshot.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", engram.Errorf(engram.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	tab, err := f.chrome.page()
	if err != nil {
		return "", err
	}
	var snapshotted bool
	defer func() { f.chrome.release(tab, snapshotted) }()

	page := tab.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	if _, err := page.Eval(snapshotLayout, engram.LayoutAttributePrefix, engram.LayoutProperties); err != nil {
		return "", fmt.Errorf("snapshotting layout: %w", err)
	}
	snapshotted = true

	return page.HTML()
}

// Snapshots returns the number of pages whose layout has been snapshotted.
func (f *Fetcher) Snapshots() int64 {
	n, _ := f.chrome.counts()
	return n
}

// Restarts returns how many times Chrome has been restarted.
func (f *Fetcher) Restarts() int {
	_, n := f.chrome.counts()
	return n
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.chrome.close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.chrome.pid()
}
