package capture

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/engram"
	"golang.org/x/time/rate"
)

var _ engram.DomainLimiter = (*SiteLimiter)(nil)

// SiteLimiter paces captures per chat site. Hosts of one platform share a
// budget, so chatgpt.com and chat.openai.com are paced together; any other
// host is paced on its own with a leading "www." ignored.
//
// SiteLimiter is safe for concurrent use.
type SiteLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	rates    map[engram.Platform]float64
}

// LimiterOption configures a SiteLimiter.
type LimiterOption func(*SiteLimiter)

// WithPlatformRate overrides the request rate of one platform.
func WithPlatformRate(platform engram.Platform, rps float64) LimiterOption {
	return func(l *SiteLimiter) {
		l.rates[platform] = rps
	}
}

// NewSiteLimiter creates a SiteLimiter allowing rps requests per second to
// each site, without bursting.
func NewSiteLimiter(rps float64, opts ...LimiterOption) *SiteLimiter {
	l := &SiteLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		rates:    make(map[engram.Platform]float64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *SiteLimiter) Wait(ctx context.Context, host string) error {
	return l.limiter(host).Wait(ctx)
}

func (l *SiteLimiter) limiter(host string) *rate.Limiter {
	key, platform := SiteKey(host)

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		rps, ok := l.rates[platform]
		if !ok {
			rps = l.rps
		}
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
		l.limiters[key] = limiter
	}
	return limiter
}

// SiteKey returns the pacing key of host and the platform it belongs to.
// Known chat hosts are keyed by platform name.
func SiteKey(host string) (string, engram.Platform) {
	if platform := engram.PlatformForHost(host); platform != engram.PlatformUnknown {
		return "platform:" + string(platform), platform
	}
	return strings.TrimPrefix(strings.ToLower(host), "www."), engram.PlatformUnknown
}
