package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipElements never contribute rendered text.
var skipElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Button:   true,
}

// blockElements start and end a line.
var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// paragraphElements are separated from their siblings by a blank line.
var paragraphElements = map[atom.Atom]bool{
	atom.P:   true,
	atom.Pre: true,
}

// InnerText renders the text of n the way a browser lays it out: whitespace
// runs collapse to one space, <br> and block boundaries become line breaks,
// paragraphs are separated by a blank line, and hidden elements, controls
// and non-visual elements are skipped. Text inside <pre> is kept verbatim.
func InnerText(n *html.Node) string {
	w := &textWriter{}
	w.walk(n, false)
	return strings.TrimSpace(string(w.buf))
}

type textWriter struct {
	buf []byte
}

func (w *textWriter) walk(n *html.Node, inPre bool) {
	switch n.Type {
	case html.TextNode:
		if inPre {
			w.buf = append(w.buf, n.Data...)
		} else {
			w.text(n.Data)
		}
		return
	case html.ElementNode:
		if skipElements[n.DataAtom] || isHidden(n) {
			return
		}
		if n.DataAtom == atom.Br {
			w.trimSpace()
			w.buf = append(w.buf, '\n')
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	breaks := 0
	if blockElements[n.DataAtom] {
		breaks = 1
	} else if paragraphElements[n.DataAtom] {
		breaks = 2
	}
	inPre = inPre || n.DataAtom == atom.Pre

	if isCell(n) && precededByCell(n) {
		w.trimSpace()
		w.buf = append(w.buf, '\t')
	}

	w.lineBreak(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, inPre)
	}
	w.lineBreak(breaks)
}

// text appends s with whitespace collapsed, dropping spaces at line starts.
func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	if isSpace(rune(s[0])) {
		w.space()
	}
	for i, field := range strings.FieldsFunc(s, isSpace) {
		if i > 0 {
			w.space()
		}
		w.buf = append(w.buf, field...)
	}
	if isSpace(rune(s[len(s)-1])) {
		w.space()
	}
}

// space appends a single separating space unless one is already pending.
func (w *textWriter) space() {
	if !w.atLineStart() && !w.endsWithSpace() {
		w.buf = append(w.buf, ' ')
	}
}

// lineBreak ensures the buffer ends with at least n newlines.
func (w *textWriter) lineBreak(n int) {
	if n == 0 || len(w.buf) == 0 {
		return
	}
	w.trimSpace()
	have := 0
	for i := len(w.buf) - 1; i >= 0 && w.buf[i] == '\n'; i-- {
		have++
	}
	for ; have < n; have++ {
		w.buf = append(w.buf, '\n')
	}
}

// trimSpace removes trailing spaces from the current line.
func (w *textWriter) trimSpace() {
	for len(w.buf) > 0 && w.buf[len(w.buf)-1] == ' ' {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

func (w *textWriter) atLineStart() bool {
	return len(w.buf) == 0 || w.buf[len(w.buf)-1] == '\n'
}

func (w *textWriter) endsWithSpace() bool {
	return len(w.buf) > 0 && (w.buf[len(w.buf)-1] == ' ' || w.buf[len(w.buf)-1] == '\t')
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

// precededByCell reports whether a table cell follows another cell of its
// row. Cells are separated by a tab.
func precededByCell(n *html.Node) bool {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if isCell(s) {
			return true
		}
	}
	return false
}

// isHidden reports whether an element is hidden by attribute or inline style.
func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			if strings.EqualFold(inlineStyle(a.Val, "display"), "none") {
				return true
			}
		}
	}
	return false
}
