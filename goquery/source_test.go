package goquery_test

import (
	"testing"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/extract"
	"github.com/fwojciec/engram/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorSource_Containers(t *testing.T) {
	t.Parallel()

	t.Run("matches any selector in document order", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "", `<html><body>
			<div class="chat-item">one</div>
			<div class="bubble">two</div>
			<div class="sidebar">nav</div>
		</body></html>`)

		containers := goquery.NewQwenSource().Containers(doc)

		require.Len(t, containers, 2)
		assert.Equal(t, "one", containers[0].Text())
		assert.Equal(t, "two", containers[1].Text())
	})

	t.Run("degrades to nothing when markup changes", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "", `<html><body><div class="x1y2z3">renamed</div></body></html>`)

		assert.Empty(t, goquery.NewClaudeSource().Containers(doc))
	})

	t.Run("returns nothing without selectors", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "", `<html><body><div>x</div></body></html>`)

		assert.Empty(t, goquery.NewSelectorSource("empty").Containers(doc))
	})

	t.Run("names each platform source", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "claude", goquery.NewClaudeSource().Name())
		assert.Equal(t, "chatgpt", goquery.NewChatGPTSource().Name())
		assert.Equal(t, "doubao", goquery.NewDoubaoSource().Name())
		assert.Equal(t, "qwen", goquery.NewQwenSource().Name())
		assert.Equal(t, "generic", goquery.NewGenericSource().Name())
	})
}

func TestExtract_Pages(t *testing.T) {
	t.Parallel()

	t.Run("uses author role attributes on ChatGPT pages", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "https://chatgpt.com/c/1", `<html><body>
			<article data-testid="conversation-turn-1">
				<div data-message-author-role="user"><div class="whitespace-pre-wrap">Write a haiku about Go</div></div>
			</article>
			<article data-testid="conversation-turn-2">
				<div data-message-author-role="assistant"><div class="markdown"><p>Goroutines hum</p><p>channels carry</p></div></div>
			</article>
		</body></html>`)

		got := extract.NewCoordinator().Extract(doc, goquery.NewChatGPTSource())

		assert.Equal(t, engram.StrategyAttribute, got.Strategy)
		assert.Equal(t, []engram.Message{
			{Role: engram.RoleUser, Content: "Write a haiku about Go"},
			{Role: engram.RoleAssistant, Content: "Goroutines hum\n\nchannels carry"},
		}, got.Messages)
	})

	t.Run("infers roles from class names on Claude pages", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "https://claude.ai/chat/1", `<html><body>
			<div class="UserMessage">How do channels work in Go?</div>
			<div class="AssistantMessage">Channels are typed conduits.</div>
			<div class="AssistantMessage">You send with ch &lt;- v.</div>
			<div class="UserMessage">Thanks!</div>
		</body></html>`)

		messages := extract.Extract(doc, goquery.NewClaudeSource())

		assert.Equal(t, []engram.Message{
			{Role: engram.RoleUser, Content: "How do channels work in Go?"},
			{Role: engram.RoleAssistant, Content: "Channels are typed conduits.\nYou send with ch <- v."},
			{Role: engram.RoleUser, Content: "Thanks!"},
		}, messages)
	})

	t.Run("infers roles from inline layout on Qwen pages", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "https://chat.qwen.ai/c/1", `<html><body>
			<div class="bubble" style="margin-left: auto">What is two plus two?</div>
			<div class="bubble">Two plus two equals four.</div>
		</body></html>`)

		messages := extract.Extract(doc, goquery.NewQwenSource())

		assert.Equal(t, []engram.Message{
			{Role: engram.RoleUser, Content: "What is two plus two?"},
			{Role: engram.RoleAssistant, Content: "Two plus two equals four."},
		}, messages)
	})

	t.Run("uses browser layout snapshot attributes", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "https://www.doubao.com/chat/1", `<html><body>
			<div class="message-item" data-engram-justify-content="flex-end">你好，请介绍一下你自己</div>
			<div class="message-item" data-engram-justify-content="normal">你好！我是豆包，你的智能助手。</div>
		</body></html>`)

		messages := extract.Extract(doc, goquery.NewDoubaoSource())

		require.Len(t, messages, 2)
		assert.Equal(t, engram.RoleUser, messages[0].Role)
		assert.Equal(t, engram.RoleAssistant, messages[1].Role)
	})

	t.Run("ignores a single tagged element in favor of structure", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "", `<html><body>
			<div data-role="user">Only tagged element here</div>
			<div class="message" style="justify-content: flex-end">Question here</div>
			<div class="message">Answer here</div>
		</body></html>`)

		got := extract.NewCoordinator().Extract(doc, goquery.NewGenericSource())

		assert.Equal(t, engram.StrategyStructure, got.Strategy)
		assert.Equal(t, []engram.Message{
			{Role: engram.RoleUser, Content: "Question here"},
			{Role: engram.RoleAssistant, Content: "Answer here"},
		}, got.Messages)
	})

	t.Run("returns empty transcript for a page without a conversation", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "https://example.com", `<html><body><h1>Welcome</h1><p>No chat here.</p></body></html>`)

		messages := extract.Extract(doc, goquery.NewGenericSource())

		assert.Empty(t, messages)
	})
}
