package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facetgrid/pkg/cache"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/observability"
	"github.com/matzehuels/facetgrid/pkg/sink"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	t, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Table = t
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RowCount = t.NumRows()

	r.Logger.Info("loaded table",
		"rows", t.NumRows(),
		"columns", len(t.Columns()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, inputHash, layoutHit, err := r.LayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.InputHash = inputHash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.FacetCount = len(layout.Series)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"facets", len(layout.Series),
		"strategy", layout.Strategy,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the table named by the options.
func (r *Runner) Load(ctx context.Context, opts Options) (*table.Table, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	return Load(ctx, opts)
}

// LayoutWithCacheInfo computes a layout with caching. It returns the layout,
// the input hash it was cached under and whether it was a cache hit.
//
// Layouts read from the cache carry no table in their managers.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, t *table.Table, opts Options) (facet.Layout, string, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return facet.Layout{}, "", false, err
	}
	r.applyLogger(&opts)

	inputHash, err := InputHash(t, opts)
	if err != nil {
		return facet.Layout{}, "", false, err
	}
	cacheKey := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := sink.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, observability.CacheLayout)
				return cached, inputHash, true, nil
			}
			// If deserialization fails, fall through to recompute
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, observability.CacheLayout)
	}

	entities := opts.Manager.SelectedEntityNames()
	if len(entities) == 0 {
		entities = t.EntityNames()
	}
	hooks := observability.Pipeline()
	ev := observability.LayoutEvent{
		ChartType: string(opts.ChartType),
		Strategy:  string(opts.Manager.FacetStrategy),
		Entities:  len(entities),
	}
	hooks.OnLayoutStart(ctx, ev)
	start := time.Now()
	layout := ComputeLayout(t, opts)
	ev.Facets = len(layout.Series)
	hooks.OnLayoutComplete(ctx, ev, time.Since(start))

	if data, err := sink.RenderJSON(layout, sink.WithCompactJSON()); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache layout", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, observability.CacheLayout, len(data))
		}
	}

	return layout, inputHash, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache info.
func (r *Runner) Layout(ctx context.Context, t *table.Table, opts Options) (facet.Layout, error) {
	layout, _, _, err := r.LayoutWithCacheInfo(ctx, t, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout facet.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := sink.RenderJSON(layout, sink.WithCompactJSON())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, observability.CacheArtifact)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, observability.CacheArtifact)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, observability.CacheArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout facet.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
