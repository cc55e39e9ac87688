package engram_test

import (
	"testing"

	"github.com/fwojciec/engram"
	"github.com/stretchr/testify/assert"
)

func TestPlatformForHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want engram.Platform
	}{
		{"claude.ai", engram.PlatformClaude},
		{"CHATGPT.COM", engram.PlatformChatGPT},
		{"chat.openai.com", engram.PlatformChatGPT},
		{"www.doubao.com", engram.PlatformDoubao},
		{"chat.qwen.ai.", engram.PlatformQwen},
		{"notclaude.ai", engram.PlatformUnknown},
		{"", engram.PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, engram.PlatformForHost(tt.host))
		})
	}
}
