// Package goquery implements engram's document model and platform
// configuration on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/engram"
)

// Compile-time interface verification.
var (
	_ engram.DocumentParser = (*Parser)(nil)
	_ engram.Document       = (*Document)(nil)
	_ engram.Element        = (*Element)(nil)
)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html loaded from url.
func (p *Parser) Parse(url string, html string) (engram.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, engram.Errorf(engram.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewDocument(url, doc), nil
}

// Document is an engram.Document backed by a goquery document.
type Document struct {
	doc *goquery.Document
	url string
}

// NewDocument wraps a goquery document loaded from url.
func NewDocument(url string, doc *goquery.Document) *Document {
	return &Document{doc: doc, url: url}
}

// URL returns the address the document was loaded from.
func (d *Document) URL() string {
	return d.url
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Query returns all elements matching selector in document order.
// goquery matches nothing for an invalid selector.
func (d *Document) Query(selector string) []engram.Element {
	sel := d.doc.Find(selector)
	elements := make([]engram.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}

// Element is an engram.Element backed by a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Text returns the rendered text of the element.
func (e *Element) Text() string {
	if len(e.sel.Nodes) == 0 {
		return ""
	}
	return InnerText(e.sel.Nodes[0])
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// ClassName returns the raw class attribute.
func (e *Element) ClassName() string {
	return e.sel.AttrOr("class", "")
}

// Style returns a style property from the layout snapshot or the inline
// style attribute. See StyleOf.
func (e *Element) Style(property string) string {
	return StyleOf(e.sel, property)
}
