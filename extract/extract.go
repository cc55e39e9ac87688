package extract

import "github.com/fwojciec/engram"

// Ensure Coordinator implements engram.Extractor at compile time.
var _ engram.Extractor = (*Coordinator)(nil)

// MinAttributeMessages is the number of attribute-tagged messages required
// before the attribute strategy is trusted. A single tagged element does not
// establish a page-wide convention.
const MinAttributeMessages = 2

// Coordinator runs the attribute strategy and falls back to the structural
// strategy over platform containers when the former is absent or unreliable.
type Coordinator struct{}

// NewCoordinator creates a new Coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Extract returns the transcript of doc. It always returns a non-nil
// Extraction; a nil document or source yields an empty transcript, and a
// panic inside an Element implementation is contained here.
func (c *Coordinator) Extract(doc engram.Document, source engram.ContainerSource) (ext *engram.Extraction) {
	defer func() {
		if r := recover(); r != nil {
			ext = &engram.Extraction{Strategy: engram.StrategyStructure, Messages: []engram.Message{}}
		}
	}()

	if doc == nil {
		return &engram.Extraction{Strategy: engram.StrategyStructure, Messages: []engram.Message{}}
	}

	if messages, ok := ExtractByAria(doc); ok && len(messages) >= MinAttributeMessages {
		return &engram.Extraction{Strategy: engram.StrategyAttribute, Messages: messages}
	}

	var containers []engram.Element
	if source != nil {
		containers = source.Containers(doc)
	}
	return &engram.Extraction{
		Strategy: engram.StrategyStructure,
		Messages: ExtractByStructure(containers),
	}
}

// Extract returns the transcript of doc using a default Coordinator.
func Extract(doc engram.Document, source engram.ContainerSource) []engram.Message {
	return NewCoordinator().Extract(doc, source).Messages
}
