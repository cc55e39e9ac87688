package goquery

// NewClaudeSource returns the container source for claude.ai.
// Claude hashes its class names, so the selectors match on substrings.
func NewClaudeSource() *SelectorSource {
	return NewSelectorSource("claude",
		`[class*="Message"]`,
		`[class*="message"]`,
		`[class*="conversation"]`,
	)
}
