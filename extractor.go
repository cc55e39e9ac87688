package engram

// Strategy names the extraction tier that produced a transcript.
type Strategy string

// Extraction strategies, in the order the coordinator tries them.
const (
	StrategyAttribute Strategy = "attribute"
	StrategyStructure Strategy = "structure"
)

// Extraction holds a transcript recovered from a document.
type Extraction struct {
	// Strategy is the tier that produced Messages.
	Strategy Strategy

	// Messages is the ordered transcript. It may be empty, never nil.
	Messages []Message
}

// Extractor recovers a conversation transcript from a document.
type Extractor interface {
	// Extract returns the transcript of doc. The source supplies platform
	// containers for the structural fallback. Extract never fails: a page
	// without a conversation yields an empty transcript.
	Extract(doc Document, source ContainerSource) *Extraction
}
