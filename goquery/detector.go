package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/engram"
)

var _ engram.PlatformDetector = (*Detector)(nil)

// Detector identifies chat platforms from a document's URL, falling back to
// site metadata and structural markers for saved pages whose URL is unknown.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the platform of the document.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(doc engram.Document) engram.Platform {
	if doc == nil {
		return engram.PlatformUnknown
	}

	// The host is authoritative when present
	if platform := d.detectFromURL(doc.URL()); platform != engram.PlatformUnknown {
		return platform
	}

	if platform := d.detectFromMeta(doc); platform != engram.PlatformUnknown {
		return platform
	}

	// ChatGPT tags every turn with its author and a conversation-turn test id
	if d.hasSelector(doc, `[data-testid^="conversation-turn"]`) &&
		d.hasSelector(doc, "[data-message-author-role]") {
		return engram.PlatformChatGPT
	}

	// Claude renders responses with its own font classes
	if d.hasSelector(doc, ".font-claude-message") ||
		d.hasSelector(doc, ".font-claude-response") ||
		d.hasSelector(doc, `[data-testid="user-message"]`) {
		return engram.PlatformClaude
	}

	return engram.PlatformUnknown
}

// detectFromURL matches the URL host against known chat domains.
func (d *Detector) detectFromURL(rawURL string) engram.Platform {
	if rawURL == "" {
		return engram.PlatformUnknown
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return engram.PlatformUnknown
	}
	return engram.PlatformForHost(u.Hostname())
}

// detectFromMeta checks site name metadata and the title.
func (d *Detector) detectFromMeta(doc engram.Document) engram.Platform {
	var names []string
	for _, el := range doc.Query(`meta[property="og:site_name"], meta[name="application-name"]`) {
		if content, ok := el.Attr("content"); ok {
			names = append(names, strings.ToLower(content))
		}
	}
	names = append(names, strings.ToLower(doc.Title()))

	for _, name := range names {
		switch {
		case strings.Contains(name, "chatgpt"):
			return engram.PlatformChatGPT
		case strings.Contains(name, "claude"):
			return engram.PlatformClaude
		case strings.Contains(name, "豆包"), strings.Contains(name, "doubao"):
			return engram.PlatformDoubao
		case strings.Contains(name, "通义"), strings.Contains(name, "千问"), strings.Contains(name, "qwen"):
			return engram.PlatformQwen
		}
	}
	return engram.PlatformUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc engram.Document, selector string) bool {
	return len(doc.Query(selector)) > 0
}
