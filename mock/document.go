package mock

import "github.com/fwojciec/engram"

// Compile-time interface verification.
var (
	_ engram.Document       = (*Document)(nil)
	_ engram.Element        = (*Element)(nil)
	_ engram.DocumentParser = (*DocumentParser)(nil)
)

// Document is a mock implementation of engram.Document.
type Document struct {
	URLFn   func() string
	TitleFn func() string
	QueryFn func(selector string) []engram.Element
}

func (d *Document) URL() string {
	return d.URLFn()
}

func (d *Document) Title() string {
	return d.TitleFn()
}

func (d *Document) Query(selector string) []engram.Element {
	return d.QueryFn(selector)
}

// Element is a mock implementation of engram.Element.
type Element struct {
	TextFn      func() string
	AttrFn      func(name string) (string, bool)
	ClassNameFn func() string
	StyleFn     func(property string) string
}

func (e *Element) Text() string {
	return e.TextFn()
}

func (e *Element) Attr(name string) (string, bool) {
	return e.AttrFn(name)
}

func (e *Element) ClassName() string {
	return e.ClassNameFn()
}

func (e *Element) Style(property string) string {
	return e.StyleFn(property)
}

// DocumentParser is a mock implementation of engram.DocumentParser.
type DocumentParser struct {
	ParseFn func(url string, html string) (engram.Document, error)
}

func (p *DocumentParser) Parse(url string, html string) (engram.Document, error) {
	return p.ParseFn(url, html)
}
