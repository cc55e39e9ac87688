package goquery_test

import (
	"testing"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/goquery"
	"github.com/fwojciec/engram/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedSource(name string) *mock.ContainerSource {
	return &mock.ContainerSource{NameFn: func() string { return name }}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns registered source for platform", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(&mock.PlatformDetector{}, namedSource("fallback"))
		registry.Register(engram.PlatformClaude, namedSource("claude"))

		got := registry.Get(engram.PlatformClaude)

		require.NotNil(t, got)
		assert.Equal(t, "claude", got.Name())
	})

	t.Run("returns nil for unregistered platform", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(&mock.PlatformDetector{}, namedSource("fallback"))

		assert.Nil(t, registry.Get(engram.PlatformQwen))
	})
}

func TestRegistry_GetForDocument(t *testing.T) {
	t.Parallel()

	t.Run("returns source for detected platform", func(t *testing.T) {
		t.Parallel()

		detector := &mock.PlatformDetector{
			DetectFn: func(engram.Document) engram.Platform { return engram.PlatformDoubao },
		}
		registry := goquery.NewRegistry(detector, namedSource("fallback"))
		registry.Register(engram.PlatformDoubao, namedSource("doubao"))

		platform, source := registry.GetForDocument(&mock.Document{})

		assert.Equal(t, engram.PlatformDoubao, platform)
		assert.Equal(t, "doubao", source.Name())
	})

	t.Run("reports generic platform with fallback for unknown documents", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(&mock.PlatformDetector{}, namedSource("fallback"))
		registry.Register(engram.PlatformClaude, namedSource("claude"))

		platform, source := registry.GetForDocument(&mock.Document{})

		assert.Equal(t, engram.PlatformGeneric, platform)
		assert.Equal(t, "fallback", source.Name())
	})

	t.Run("keeps detected platform when it has no registered source", func(t *testing.T) {
		t.Parallel()

		detector := &mock.PlatformDetector{
			DetectFn: func(engram.Document) engram.Platform { return engram.PlatformQwen },
		}
		registry := goquery.NewRegistry(detector, namedSource("fallback"))

		platform, source := registry.GetForDocument(&mock.Document{})

		assert.Equal(t, engram.PlatformQwen, platform)
		assert.Equal(t, "fallback", source.Name())
	})
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	registry := goquery.NewRegistry(&mock.PlatformDetector{}, namedSource("fallback"))
	registry.Register(engram.PlatformQwen, namedSource("qwen"))
	registry.Register(engram.PlatformClaude, namedSource("claude"))
	registry.Register(engram.PlatformClaude, namedSource("claude-v2"))

	assert.Equal(t, []engram.Platform{engram.PlatformClaude, engram.PlatformQwen}, registry.List())
	assert.Equal(t, "claude-v2", registry.Get(engram.PlatformClaude).Name())
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry := goquery.NewDefaultRegistry()

	assert.ElementsMatch(t, []engram.Platform{
		engram.PlatformChatGPT,
		engram.PlatformClaude,
		engram.PlatformDoubao,
		engram.PlatformGeneric,
		engram.PlatformQwen,
	}, registry.List())
}
