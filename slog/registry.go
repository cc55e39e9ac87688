package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/engram"
)

// Ensure LoggingRegistry implements engram.PlatformRegistry.
var _ engram.PlatformRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a PlatformRegistry with debug logging for platform detection.
type LoggingRegistry struct {
	next   engram.PlatformRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next engram.PlatformRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(platform engram.Platform) engram.ContainerSource {
	return r.next.Get(platform)
}

// GetForDocument delegates detection to the wrapped registry and logs the
// platform and container source it chose.
func (r *LoggingRegistry) GetForDocument(doc engram.Document) (engram.Platform, engram.ContainerSource) {
	begin := time.Now()
	platform, source := r.next.GetForDocument(doc)
	platformName := string(platform)
	if platform == engram.PlatformUnknown {
		platformName = "(unknown)"
	}
	sourceName := "(none)"
	if source != nil {
		sourceName = source.Name()
	}
	r.logger.Info("platform detection",
		"url", documentURL(doc),
		"platform", platformName,
		"source", sourceName,
		"duration", time.Since(begin),
	)
	return platform, source
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(platform engram.Platform, source engram.ContainerSource) {
	r.next.Register(platform, source)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []engram.Platform {
	return r.next.List()
}
