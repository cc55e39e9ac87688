package extract_test

import (
	"testing"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/extract"
	"github.com/fwojciec/engram/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute messages when at least two are tagged", func(t *testing.T) {
		t.Parallel()

		doc := newDocument(
			tagged("user", "What is a goroutine?"),
			tagged("assistant", "A lightweight thread."),
		)
		source := &mock.ContainerSource{
			ContainersFn: func(engram.Document) []engram.Element {
				t.Fatal("containers must not be queried when attributes are trusted")
				return nil
			},
		}

		got := extract.NewCoordinator().Extract(doc, source)

		want, ok := extract.ExtractByAria(doc)
		require.True(t, ok)
		assert.Equal(t, engram.StrategyAttribute, got.Strategy)
		assert.Equal(t, want, got.Messages)
	})

	t.Run("falls back to structure when a single element is tagged", func(t *testing.T) {
		t.Parallel()

		doc := newDocument(tagged("user", "Only one tagged element"))
		containers := []engram.Element{
			container("user-turn", "question"),
			container("bot-turn", "answer"),
		}

		got := extract.NewCoordinator().Extract(doc, newSource(containers...))

		assert.Equal(t, engram.StrategyStructure, got.Strategy)
		assert.Equal(t, extract.ExtractByStructure(containers), got.Messages)
	})

	t.Run("falls back to structure when nothing is tagged", func(t *testing.T) {
		t.Parallel()

		containers := []engram.Element{container("human", "question"), container("ai", "answer")}

		got := extract.NewCoordinator().Extract(newDocument(), newSource(containers...))

		assert.Equal(t, engram.StrategyStructure, got.Strategy)
		assert.Equal(t, []engram.Message{
			{Role: engram.RoleUser, Content: "question"},
			{Role: engram.RoleAssistant, Content: "answer"},
		}, got.Messages)
	})

	t.Run("falls back when tagged elements are all filtered", func(t *testing.T) {
		t.Parallel()

		doc := newDocument(tagged("user", "hi"), tagged("assistant", "ok"))

		got := extract.NewCoordinator().Extract(doc, newSource(container("bubble", "fallback text")))

		assert.Equal(t, engram.StrategyStructure, got.Strategy)
		require.Len(t, got.Messages, 1)
		assert.Equal(t, "fallback text", got.Messages[0].Content)
	})

	t.Run("returns empty transcript when the platform markup matches nothing", func(t *testing.T) {
		t.Parallel()

		got := extract.NewCoordinator().Extract(newDocument(), newSource())

		require.NotNil(t, got.Messages)
		assert.Empty(t, got.Messages)
	})

	t.Run("tolerates nil document and nil source", func(t *testing.T) {
		t.Parallel()

		c := extract.NewCoordinator()

		assert.Empty(t, c.Extract(nil, newSource(container("user", "question"))).Messages)
		assert.Empty(t, c.Extract(newDocument(), nil).Messages)
	})

	t.Run("contains panics from element implementations", func(t *testing.T) {
		t.Parallel()

		broken := &mock.Element{TextFn: func() string { panic("detached node") }}

		var got *engram.Extraction
		require.NotPanics(t, func() {
			got = extract.NewCoordinator().Extract(newDocument(), newSource(broken))
		})
		require.NotNil(t, got)
		assert.Empty(t, got.Messages)
	})

	t.Run("is stable across runs on an unchanged document", func(t *testing.T) {
		t.Parallel()

		doc := newDocument(tagged("user", "hello"))
		source := newSource(container("user", "hello"), container("user", "again"), container("x", "reply"))
		c := extract.NewCoordinator()

		first := c.Extract(doc, source)
		second := c.Extract(doc, source)

		assert.Equal(t, first, second)
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	doc := newDocument(tagged("user", "question one"), tagged("assistant", "answer one"))

	messages := extract.Extract(doc, newSource())

	assert.Len(t, messages, 2)
}
