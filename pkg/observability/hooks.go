// Package observability lets a binary observe facetgrid without the library
// depending on a metrics or tracing backend.
//
// The pipeline, the runner's cache lookups and the HTTP server report events
// to whatever hooks are registered. Until something is registered every event
// goes to [Noop]. Registration belongs in main:
//
//	observability.SetPipelineHooks(myTracer)
//	observability.SetCacheHooks(myTracer)
//
// and library code emits:
//
//	observability.Pipeline().OnLayoutStart(ctx, ev)
//	observability.Cache().OnCacheHit(ctx, observability.CacheLayout)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// CacheKind names what a cache entry holds.
type CacheKind string

const (
	CacheLayout   CacheKind = "layout"
	CacheArtifact CacheKind = "artifact"
)

// LayoutEvent describes one layout computation. Facets is only known when
// the layout completes.
type LayoutEvent struct {
	ChartType string
	Strategy  string
	Entities  int
	Facets    int
}

// PipelineHooks receives load, layout and render events. Layout never fails,
// so its completion carries no error.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, rows int, d time.Duration, err error)
	OnLayoutStart(ctx context.Context, ev LayoutEvent)
	OnLayoutComplete(ctx context.Context, ev LayoutEvent, d time.Duration)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error)
}

// CacheHooks receives the runner's cache lookups and writes.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind CacheKind)
	OnCacheMiss(ctx context.Context, kind CacheKind)
	OnCacheSet(ctx context.Context, kind CacheKind, bytes int)
}

// HTTPHooks receives API requests. route is the chi pattern when one matched.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, d time.Duration)
	OnError(ctx context.Context, method, route string, err error)
}

// Noop implements every hook interface and discards all events.
type Noop struct{}

func (Noop) OnLoadStart(context.Context, string)                               {}
func (Noop) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (Noop) OnLayoutStart(context.Context, LayoutEvent)                        {}
func (Noop) OnLayoutComplete(context.Context, LayoutEvent, time.Duration)      {}
func (Noop) OnRenderStart(context.Context, []string)                           {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)  {}
func (Noop) OnCacheHit(context.Context, CacheKind)                             {}
func (Noop) OnCacheMiss(context.Context, CacheKind)                            {}
func (Noop) OnCacheSet(context.Context, CacheKind, int)                        {}
func (Noop) OnRequest(context.Context, string, string)                         {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)    {}
func (Noop) OnError(context.Context, string, string, error)                    {}

var (
	_ PipelineHooks = Noop{}
	_ CacheHooks    = Noop{}
	_ HTTPHooks     = Noop{}
)

// ===== Registry =====

type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

// update swaps in a modified copy of the registry. Readers never lock.
func update(fn func(*registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores [Noop] for every category.
func Reset() {
	current.Store(&registry{pipeline: Noop{}, cache: Noop{}, http: Noop{}})
}
