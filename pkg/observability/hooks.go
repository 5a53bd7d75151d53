// Package observability lets applications watch the org-chart pipeline, the
// cache and the HTTP server without those packages knowing about any
// metrics or tracing backend.
//
// Libraries report events to the hooks returned by [Pipeline], [Cache] and
// [Server]. Until an application registers its own, those are no-ops.
//
//	observability.Register(observability.NewLogHooks(logger))
//	defer observability.Reset()
//
// The registry is a single immutable snapshot swapped atomically, so hooks
// can be read on every request without locking.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the org-chart pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, employees int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, profile string, employees int)
	OnLayoutComplete(ctx context.Context, profile, mode string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "directory",
// "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives one event per served request, after the response is
// written. route is the chi route pattern, not the raw path.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopPipelineHooks ignores every pipeline event. Embed it to implement
// only some of the methods.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                             {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                                {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)       {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every request.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

var defaults = hookSet{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	server:   NoopServerHooks{},
}

var current atomic.Pointer[hookSet]

func init() { Reset() }

// update swaps in a modified copy of the current hooks.
func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Register installs h for every hook interface it implements and returns
// whether it implemented any.
func Register(h any) bool {
	p, isPipeline := h.(PipelineHooks)
	c, isCache := h.(CacheHooks)
	s, isServer := h.(ServerHooks)
	update(func(set *hookSet) {
		if isPipeline {
			set.pipeline = p
		}
		if isCache {
			set.cache = c
		}
		if isServer {
			set.server = s
		}
	})
	return isPipeline || isCache || isServer
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(set *hookSet) { set.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(set *hookSet) { set.cache = h })
	}
}

// SetServerHooks installs h. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		update(func(set *hookSet) { set.server = h })
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// Server returns the installed server hooks.
func Server() ServerHooks { return current.Load().server }

// Reset restores the no-op hooks.
func Reset() {
	set := defaults
	current.Store(&set)
}
