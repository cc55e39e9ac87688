package extract_test

import (
	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/mock"
)

// newElement returns a fixture element with the given text, attributes,
// class name and computed styles.
func newElement(text, class string, attrs, styles map[string]string) *mock.Element {
	return &mock.Element{
		TextFn: func() string { return text },
		AttrFn: func(name string) (string, bool) {
			v, ok := attrs[name]
			return v, ok
		},
		ClassNameFn: func() string { return class },
		StyleFn:     func(property string) string { return styles[property] },
	}
}

// tagged returns an element carrying a data-role attribute.
func tagged(role, text string) engram.Element {
	return newElement(text, "", map[string]string{"data-role": role}, nil)
}

// container returns an untagged element with a class name.
func container(class, text string) engram.Element {
	return newElement(text, class, nil, nil)
}

// newDocument returns a document whose role query yields the tagged elements.
func newDocument(tagged ...engram.Element) *mock.Document {
	return &mock.Document{
		URLFn:   func() string { return "https://chat.example.com/c/1" },
		TitleFn: func() string { return "Chat" },
		QueryFn: func(string) []engram.Element { return tagged },
	}
}

// newSource returns a container source yielding the given containers.
func newSource(containers ...engram.Element) *mock.ContainerSource {
	return &mock.ContainerSource{
		ContainersFn: func(engram.Document) []engram.Element { return containers },
		NameFn:       func() string { return "test" },
	}
}
