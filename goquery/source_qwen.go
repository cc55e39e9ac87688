package goquery

// NewQwenSource returns the container source for chat.qwen.ai and
// tongyi.aliyun.com.
func NewQwenSource() *SelectorSource {
	return NewSelectorSource("qwen",
		`[class*="message"]`,
		`[class*="Message"]`,
		`[class*="chat-item"]`,
		`[class*="bubble"]`,
	)
}
