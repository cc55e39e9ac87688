package goquery

import (
	"strings"

	"github.com/fwojciec/engram"
)

var _ engram.ContainerSource = (*SelectorSource)(nil)

// SelectorSource selects message containers with a group of CSS selectors.
// Containers are returned in document order, so a container nested inside
// another matching container is returned after it.
type SelectorSource struct {
	name      string
	selectors []string
}

// NewSelectorSource creates a SelectorSource matching any of selectors.
func NewSelectorSource(name string, selectors ...string) *SelectorSource {
	return &SelectorSource{name: name, selectors: selectors}
}

// Name returns the source's identifier.
func (s *SelectorSource) Name() string {
	return s.name
}

// Selectors returns the selector set of the source.
func (s *SelectorSource) Selectors() []string {
	return s.selectors
}

// Containers returns the elements of doc matching any selector.
func (s *SelectorSource) Containers(doc engram.Document) []engram.Element {
	if len(s.selectors) == 0 {
		return nil
	}
	return doc.Query(strings.Join(s.selectors, ", "))
}
