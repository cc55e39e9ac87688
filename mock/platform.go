package mock

import "github.com/fwojciec/engram"

// Compile-time interface verification.
var (
	_ engram.ContainerSource  = (*ContainerSource)(nil)
	_ engram.PlatformDetector = (*PlatformDetector)(nil)
	_ engram.PlatformRegistry = (*PlatformRegistry)(nil)
)

// ContainerSource is a mock implementation of engram.ContainerSource.
type ContainerSource struct {
	ContainersFn func(doc engram.Document) []engram.Element
	NameFn       func() string
}

func (s *ContainerSource) Containers(doc engram.Document) []engram.Element {
	return s.ContainersFn(doc)
}

func (s *ContainerSource) Name() string {
	return s.NameFn()
}

// PlatformDetector is a mock implementation of engram.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(doc engram.Document) engram.Platform
}

func (d *PlatformDetector) Detect(doc engram.Document) engram.Platform {
	if d.DetectFn == nil {
		return engram.PlatformUnknown
	}
	return d.DetectFn(doc)
}

// PlatformRegistry is a mock implementation of engram.PlatformRegistry.
type PlatformRegistry struct {
	GetFn            func(platform engram.Platform) engram.ContainerSource
	GetForDocumentFn func(doc engram.Document) (engram.Platform, engram.ContainerSource)
	RegisterFn       func(platform engram.Platform, source engram.ContainerSource)
	ListFn           func() []engram.Platform
}

func (r *PlatformRegistry) Get(platform engram.Platform) engram.ContainerSource {
	return r.GetFn(platform)
}

func (r *PlatformRegistry) GetForDocument(doc engram.Document) (engram.Platform, engram.ContainerSource) {
	return r.GetForDocumentFn(doc)
}

func (r *PlatformRegistry) Register(platform engram.Platform, source engram.ContainerSource) {
	r.RegisterFn(platform, source)
}

func (r *PlatformRegistry) List() []engram.Platform {
	return r.ListFn()
}
