package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/parser"
	"github.com/fwojciec/engram"
)

// StyleOf returns a style property of the first element in sel. A layout
// snapshot attribute takes precedence over the inline style attribute.
// Without either, there is no layout information and StyleOf returns "".
func StyleOf(sel *goquery.Selection, property string) string {
	if v, ok := sel.Attr(engram.LayoutAttributePrefix + property); ok {
		return strings.TrimSpace(v)
	}
	if decls, ok := sel.Attr("style"); ok {
		return inlineStyle(decls, property)
	}
	return ""
}

// inlineStyle returns the value of property in a style attribute. Later
// declarations override earlier ones. margin-left is also resolved from the
// margin shorthand. Returns "" when the attribute does not parse.
func inlineStyle(decls, property string) string {
	parsed, err := parser.ParseDeclarations(decls)
	if err != nil {
		return ""
	}

	property = strings.ToLower(property)
	var value string
	for _, decl := range parsed {
		name := strings.ToLower(strings.TrimSpace(decl.Property))
		v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(decl.Value), "!important"))

		switch {
		case name == property:
			value = v
		case name == "margin" && property == "margin-left":
			value = marginLeft(v)
		}
	}
	return value
}

// marginLeft resolves the left component of a margin shorthand value.
func marginLeft(shorthand string) string {
	parts := strings.Fields(shorthand)
	switch len(parts) {
	case 1:
		return parts[0]
	case 2, 3:
		return parts[1]
	case 4:
		return parts[3]
	}
	return ""
}
