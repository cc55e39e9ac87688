package goquery

import (
	"sort"

	"github.com/fwojciec/engram"
)

var _ engram.PlatformRegistry = (*Registry)(nil)

// Registry manages platform-specific container sources and detects the
// platform of a document. It falls back to a generic source when the
// platform is unknown or no specific source is registered.
type Registry struct {
	detector engram.PlatformDetector
	fallback engram.ContainerSource
	sources  map[engram.Platform]engram.ContainerSource
}

// NewRegistry creates a new Registry with the given detector and fallback source.
func NewRegistry(detector engram.PlatformDetector, fallback engram.ContainerSource) *Registry {
	return &Registry{
		detector: detector,
		fallback: fallback,
		sources:  make(map[engram.Platform]engram.ContainerSource),
	}
}

// NewDefaultRegistry returns a Registry with every supported platform
// registered and the generic source as fallback.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector(), NewGenericSource())
	r.Register(engram.PlatformClaude, NewClaudeSource())
	r.Register(engram.PlatformChatGPT, NewChatGPTSource())
	r.Register(engram.PlatformDoubao, NewDoubaoSource())
	r.Register(engram.PlatformQwen, NewQwenSource())
	r.Register(engram.PlatformGeneric, NewGenericSource())
	return r
}

// Get returns the container source for a platform.
// Returns nil if no source is registered for the platform.
func (r *Registry) Get(platform engram.Platform) engram.ContainerSource {
	return r.sources[platform]
}

// GetForDocument detects the platform of doc and returns it with its source.
// A detected platform without a registered source keeps its identity but uses
// the fallback source. Unknown platforms are reported as PlatformGeneric.
func (r *Registry) GetForDocument(doc engram.Document) (engram.Platform, engram.ContainerSource) {
	platform := r.detector.Detect(doc)
	if source, ok := r.sources[platform]; ok {
		return platform, source
	}
	if platform == engram.PlatformUnknown {
		platform = engram.PlatformGeneric
	}
	return platform, r.fallback
}

// Register adds a source for a platform.
// If a source is already registered for the platform, it is replaced.
func (r *Registry) Register(platform engram.Platform, source engram.ContainerSource) {
	r.sources[platform] = source
}

// List returns all registered platforms in name order.
func (r *Registry) List() []engram.Platform {
	platforms := make([]engram.Platform, 0, len(r.sources))
	for p := range r.sources {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
