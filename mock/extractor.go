package mock

import "github.com/fwojciec/engram"

var _ engram.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of engram.Extractor.
type Extractor struct {
	ExtractFn func(doc engram.Document, source engram.ContainerSource) *engram.Extraction
}

func (e *Extractor) Extract(doc engram.Document, source engram.ContainerSource) *engram.Extraction {
	return e.ExtractFn(doc, source)
}
