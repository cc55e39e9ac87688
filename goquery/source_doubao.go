package goquery

// NewDoubaoSource returns the container source for www.doubao.com.
func NewDoubaoSource() *SelectorSource {
	return NewSelectorSource("doubao",
		`[data-role]`,
		`[class*="MessageItem"]`,
		`[class*="message-item"]`,
		`[class*="chat-content"]`,
	)
}
