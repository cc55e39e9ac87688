package goquery

// NewGenericSource returns a container source using naming patterns common
// across chat applications. It is the fallback for unknown platforms.
func NewGenericSource() *SelectorSource {
	return NewSelectorSource("generic",
		`[class*="message"]`,
		`[class*="Message"]`,
		`[class*="chat-item"]`,
		`[class*="bubble"]`,
		`[class*="turn"]`,
	)
}
