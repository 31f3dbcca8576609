package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facetgrid/pkg/observability"
)

// debugHooks logs pipeline and cache events at debug level.
type debugHooks struct {
	logger *log.Logger
}

// EnableTracing registers hooks that log every pipeline stage and cache
// lookup. main calls it for --verbose.
func (c *CLI) EnableTracing() {
	h := debugHooks{logger: c.Logger.WithPrefix("trace")}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h debugHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h debugHooks) OnLoadComplete(_ context.Context, source string, rows int, d time.Duration, err error) {
	h.logger.Debug("load done", "source", source, "rows", rows, "duration", d, "err", err)
}

func (h debugHooks) OnLayoutStart(_ context.Context, ev observability.LayoutEvent) {
	h.logger.Debug("layout start", "type", ev.ChartType, "strategy", ev.Strategy, "entities", ev.Entities)
}

func (h debugHooks) OnLayoutComplete(_ context.Context, ev observability.LayoutEvent, d time.Duration) {
	h.logger.Debug("layout done", "type", ev.ChartType, "facets", ev.Facets, "duration", d)
}

func (h debugHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h debugHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, kind observability.CacheKind) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h debugHooks) OnCacheMiss(_ context.Context, kind observability.CacheKind) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h debugHooks) OnCacheSet(_ context.Context, kind observability.CacheKind, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
