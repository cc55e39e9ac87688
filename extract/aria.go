// Package extract recovers conversation transcripts from chat pages.
//
// Two strategies are combined. The attribute strategy trusts explicit role
// attributes when a page exposes them. The structural strategy infers roles
// of platform containers from layout and naming signals and merges
// consecutive containers of the same role into one message.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/engram"
)

// RoleAttributes lists the attributes that carry a message's role, in the
// order they are consulted. The first non-empty value wins.
var RoleAttributes = []string{"data-role", "data-message-author-role"}

// TimestampAttribute carries an optional per-message timestamp.
const TimestampAttribute = "data-timestamp"

// roleSelector matches elements tagged by any supported role convention.
const roleSelector = `[data-role="user"], [data-role="assistant"], [data-message-author-role]`

// ExtractByAria returns the messages of all role-tagged elements in doc.
// The boolean is false when the document has no role-tagged elements at all,
// which is different from having tagged elements that all fail the minimum
// length filter (true with an empty slice).
func ExtractByAria(doc engram.Document) ([]engram.Message, bool) {
	elements := doc.Query(roleSelector)
	if len(elements) == 0 {
		return nil, false
	}

	messages := make([]engram.Message, 0, len(elements))
	for _, el := range elements {
		text := strings.TrimSpace(el.Text())
		if !isContent(text) {
			continue
		}
		timestamp, _ := el.Attr(TimestampAttribute)
		messages = append(messages, engram.Message{
			Role:      roleOf(el),
			Content:   text,
			Timestamp: timestamp,
		})
	}
	return messages, true
}

// roleOf returns the first non-empty role attribute of el.
func roleOf(el engram.Element) engram.Role {
	for _, name := range RoleAttributes {
		if v, ok := el.Attr(name); ok && v != "" {
			return engram.Role(v)
		}
	}
	return ""
}

// isContent reports whether trimmed text is long enough to be a message.
// Length is counted in characters so CJK transcripts are not penalized.
func isContent(text string) bool {
	return utf8.RuneCountInString(text) >= engram.MinContentLength
}
