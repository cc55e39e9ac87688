package engram

// Element is a read-only view of a single element in a parsed page.
type Element interface {
	// Text returns the rendered text of the element and its descendants,
	// approximating what a browser reports as innerText.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// ClassName returns the raw value of the class attribute.
	ClassName() string

	// Style returns the value of a computed style property such as
	// "justify-content". Returns "" when no layout information is available.
	Style(property string) string
}

// Document is an immutable snapshot of a chat page.
type Document interface {
	// URL returns the address the document was loaded from.
	URL() string

	// Title returns the document title, or "" if it has none.
	Title() string

	// Query returns all elements matching a CSS selector in document order.
	// An invalid selector matches nothing.
	Query(selector string) []Element
}

// DocumentParser turns raw HTML into a Document.
type DocumentParser interface {
	// Parse parses html loaded from url.
	Parse(url string, html string) (Document, error)
}

// LayoutAttributePrefix prefixes the attributes a browser fetcher writes to
// snapshot computed styles into static HTML, e.g. data-engram-justify-content.
const LayoutAttributePrefix = "data-engram-"

// LayoutProperties are the computed style properties snapshotted for role
// inference.
var LayoutProperties = []string{"justify-content", "margin-left"}
