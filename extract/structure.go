package extract

import (
	"strings"

	"github.com/fwojciec/engram"
)

// Signal reports whether an element looks like a user message.
type Signal func(el engram.Element) bool

// UserSignals are checked in order; the first that holds classifies a
// container as a user message. Layout signals come first because chat UIs
// right-align the user's bubbles regardless of how they name them.
var UserSignals = []Signal{
	StyleEquals("justify-content", "flex-end"),
	StyleEquals("margin-left", "auto"),
	ClassContains("user"),
	ClassContains("human"),
}

// StyleEquals returns a Signal that holds when a style property has value.
// Elements without layout information never match.
func StyleEquals(property, value string) Signal {
	return func(el engram.Element) bool {
		return strings.EqualFold(strings.TrimSpace(el.Style(property)), value)
	}
}

// ClassContains returns a Signal that holds when the class name contains
// substr, ignoring case.
func ClassContains(substr string) Signal {
	substr = strings.ToLower(substr)
	return func(el engram.Element) bool {
		return strings.Contains(strings.ToLower(el.ClassName()), substr)
	}
}

// InferRole classifies a container as a user or assistant message.
func InferRole(el engram.Element) engram.Role {
	for _, signal := range UserSignals {
		if signal(el) {
			return engram.RoleUser
		}
	}
	return engram.RoleAssistant
}

// ExtractByStructure infers a transcript from candidate containers given in
// document order. Containers with too little text are skipped. Consecutive
// containers of the same role are merged into a single message, since chat
// UIs often split one turn across several bubbles.
func ExtractByStructure(containers []engram.Element) []engram.Message {
	state := transcript{messages: []engram.Message{}}
	for _, el := range containers {
		state = state.add(el)
	}
	return state.messages
}

// transcript is the fold state of ExtractByStructure.
type transcript struct {
	lastRole engram.Role
	messages []engram.Message
}

func (t transcript) add(el engram.Element) transcript {
	text := strings.TrimSpace(el.Text())
	if !isContent(text) {
		return t
	}

	role := InferRole(el)
	if n := len(t.messages); n > 0 && role == t.lastRole {
		t.messages[n-1].Content += "\n" + text
		return t
	}

	t.messages = append(t.messages, engram.Message{Role: role, Content: text})
	t.lastRole = role
	return t
}
