package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/capture"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	if c.Platform != "" {
		platform := engram.Platform(c.Platform)
		if deps.Registry.Get(platform) == nil {
			fmt.Fprintf(deps.Stderr, "error: unknown platform %q. Use 'engram platforms' to see supported platforms.\n", c.Platform)
			return engram.Errorf(engram.EINVALID, "unknown platform %q", c.Platform)
		}
		deps.Capturer.Platform = platform
	}
	if c.Concurrency > 0 {
		deps.Capturer.Concurrency = c.Concurrency
	}

	switch {
	case c.HTML != "":
		return c.captureFile(deps)
	case len(c.URLs) == 1:
		session, err := deps.Capturer.Capture(deps.Ctx, c.URLs[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
			return err
		}
		printCaptured(deps, session)
		return nil
	case len(c.URLs) > 1:
		return c.captureAll(deps)
	default:
		fmt.Fprintln(deps.Stderr, "error: give at least one URL or --html")
		return engram.Errorf(engram.EINVALID, "no URL or HTML file given")
	}
}

// captureFile captures a saved page. The first URL, if any, is recorded as
// the page address.
func (c *CaptureCmd) captureFile(deps *Dependencies) error {
	html, err := os.ReadFile(c.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var url string
	if len(c.URLs) > 0 {
		url = c.URLs[0]
	}

	session, err := deps.Capturer.CaptureHTML(deps.Ctx, url, string(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
		return err
	}
	printCaptured(deps, session)
	return nil
}

func (c *CaptureCmd) captureAll(deps *Dependencies) error {
	progress := func(event capture.ProgressEvent) {
		switch event.Type {
		case capture.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Capturing %d conversations\n", event.Total)
		case capture.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, summary(event.Session))
		case capture.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, engram.ErrorMessage(event.Error))
		case capture.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  duplicate %s\n", event.URL)
		}
	}

	result, err := deps.Capturer.CaptureAll(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error capturing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d sessions (%d messages), %d failed\n", result.Saved, result.Messages, result.Failed)
	if result.Saved == 0 && result.Failed > 0 {
		return engram.Errorf(engram.ENOTFOUND, "no conversation captured")
	}
	return nil
}

func printCaptured(deps *Dependencies, session *engram.Session) {
	fmt.Fprintf(deps.Stdout, "Saved session %s\n", session.ID)
	fmt.Fprintf(deps.Stdout, "  %s\n", summary(session))
}

// summary renders a session as "<platform> · <n> messages  <title>".
func summary(session *engram.Session) string {
	return fmt.Sprintf("%s · %d messages  %s", session.Platform, session.MessageCount, session.Title)
}
