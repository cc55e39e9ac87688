package engram

// Role identifies the party that authored a message.
type Role string

// Roles distinguished by the extraction engine. Attribute-tagged pages may
// carry other values (e.g. "system"), which are passed through unchanged.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MinContentLength is the minimum number of characters of trimmed text an
// element must carry to count as a message. Shorter text is UI chrome:
// icons, timestamps, avatars, button labels.
const MinContentLength = 5

// Message is a single turn of a conversation.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
