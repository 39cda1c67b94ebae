// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries never depend on a concrete backend. They call the registered
// hooks, which default to no-ops, and the binary installs real
// implementations at startup:
//
//	func main() {
//	    observability.SetFormatHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Format().OnLayoutStart(ctx, filename, width)
//	// ... build layouts ...
//	observability.Format().OnLayoutComplete(ctx, filename, candidates, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Format Hooks
// =============================================================================

// FormatHooks receives events from the formatting pipeline.
type FormatHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, filename string)
	OnParseComplete(ctx context.Context, filename string, duration time.Duration, err error)

	// Layout events. candidates is the size of the final candidate set.
	OnLayoutStart(ctx context.Context, filename string, width int)
	OnLayoutComplete(ctx context.Context, filename string, candidates int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP server.
type ServerHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFormatHooks is a no-op implementation of FormatHooks.
type NoopFormatHooks struct{}

func (NoopFormatHooks) OnParseStart(context.Context, string)                                {}
func (NoopFormatHooks) OnParseComplete(context.Context, string, time.Duration, error)       {}
func (NoopFormatHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopFormatHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                       {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	formatHooks FormatHooks = NoopFormatHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetFormatHooks registers custom format hooks.
// This should be called once at application startup.
func SetFormatHooks(h FormatHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		formatHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks.
// This should be called once at application startup.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Format returns the registered format hooks.
func Format() FormatHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return formatHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	formatHooks = NoopFormatHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
