package goquery

// NewChatGPTSource returns the container source for chatgpt.com.
// ChatGPT normally exposes data-message-author-role and is handled by the
// attribute strategy; these selectors cover pages where it does not.
func NewChatGPTSource() *SelectorSource {
	return NewSelectorSource("chatgpt",
		`article[data-testid^="conversation-turn"]`,
		`[class*="user-message"]`,
		`[class*="markdown"]`,
	)
}
