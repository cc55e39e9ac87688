package engram

import "strings"

// Platform identifies a chat web application.
type Platform string

// Supported platforms.
const (
	PlatformUnknown Platform = ""
	PlatformClaude  Platform = "claude"
	PlatformChatGPT Platform = "chatgpt"
	PlatformDoubao  Platform = "doubao"
	PlatformQwen    Platform = "qwen"
	PlatformGeneric Platform = "generic"
)

// platformHosts maps chat application domains to platforms.
// Subdomains match their parent domain.
var platformHosts = []struct {
	domain   string
	platform Platform
}{
	{"claude.ai", PlatformClaude},
	{"chatgpt.com", PlatformChatGPT},
	{"chat.openai.com", PlatformChatGPT},
	{"doubao.com", PlatformDoubao},
	{"qwen.ai", PlatformQwen},
	{"tongyi.aliyun.com", PlatformQwen},
	{"qianwen.aliyun.com", PlatformQwen},
}

// PlatformForHost returns the platform serving host, or PlatformUnknown.
func PlatformForHost(host string) Platform {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for _, h := range platformHosts {
		if host == h.domain || strings.HasSuffix(host, "."+h.domain) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// ContainerSource selects the candidate message containers of a platform.
// Implementations are selector configuration, not logic: when a platform
// changes its markup they degrade to returning nothing.
type ContainerSource interface {
	// Containers returns candidate message containers in document order.
	Containers(doc Document) []Element

	// Name returns the source's identifier (e.g., "claude", "generic").
	Name() string
}

// PlatformDetector identifies the chat platform a document belongs to.
type PlatformDetector interface {
	// Detect returns the platform of the document.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(doc Document) Platform
}

// PlatformRegistry manages platform-specific container sources.
type PlatformRegistry interface {
	// Get returns the container source for a platform.
	// Returns nil if no source is registered for the platform.
	Get(platform Platform) ContainerSource

	// GetForDocument detects the platform of the document and returns it
	// together with its container source. Falls back to a generic source
	// when the platform is unknown or has no registered source.
	GetForDocument(doc Document) (Platform, ContainerSource)

	// Register adds a container source for a platform.
	Register(platform Platform, source ContainerSource)

	// List returns all registered platforms.
	List() []Platform
}
