// Package pipeline provides the load → layout → render pipeline for facetgrid.
//
// The CLI and the HTTP API both run charts through this package, so option
// defaults, validation and caching behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the data table from a file or take it inline
//  2. Layout: resolve facets and place them with the facet engine
//  3. Render: draw the layout as SVG, PNG or JSON
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    TablePath: "gdp.csv",
//	    Manager:   chart.Manager{FacetStrategy: chart.FacetEntity},
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	t, err := runner.Load(ctx, opts)
//	layout, err := runner.Layout(ctx, t, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facetgrid/pkg/cache"
	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/geom"
	"github.com/matzehuels/facetgrid/pkg/sink"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 640.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = 480.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// MaxDimension bounds the container width and height in pixels.
	MaxDimension = 10000.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0
)

// DefaultChartType is the chart kind drawn in every facet when none is set.
const DefaultChartType = chart.DefaultType

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	TablePath string       `json:"-"`
	Table     *table.Table `json:"table,omitempty"`

	// Layout options
	Manager   chart.Manager  `json:"manager"`
	ChartType chart.TypeName `json:"chart_type,omitempty"`
	Width     float64        `json:"width,omitempty"`
	Height    float64        `json:"height,omitempty"`
	Refresh   bool           `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Gutters  bool     `json:"gutters,omitempty"`
	NoTitles bool     `json:"no_titles,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the loaded data table.
	Table *table.Table

	// InputHash identifies the table and layout options.
	InputHash string

	// Layout is the placed facet layout.
	Layout facet.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int
	FacetCount int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a table source is given.
func (o *Options) ValidateForLoad() error {
	if o.Table == nil && o.TablePath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "table or table path is required")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ChartType == "" {
		o.ChartType = DefaultChartType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := chart.ParseTypeName(string(o.ChartType)); err != nil {
		return err
	}
	if _, err := chart.ParseFacetStrategy(string(o.Manager.FacetStrategy)); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not be negative")
	}
	if o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not exceed %g", MaxDimension)
	}
	if err := o.Manager.XAxisConfig.Validate(); err != nil {
		return err
	}
	if err := o.Manager.YAxisConfig.Validate(); err != nil {
		return err
	}
	for _, slug := range o.Manager.YColumnSlugs {
		if err := errors.ValidateSlug(slug); err != nil {
			return err
		}
	}
	for _, name := range o.Manager.SelectedEntityNames() {
		if err := errors.ValidateEntityName(name); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and %g", MaxScale)
	}
	if slices.Contains(o.Formats, FormatPNG) && !sink.FitsPNG(o.Width, o.Height, o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "png canvas %gx%g at scale %g exceeds %d pixels", o.Width, o.Height, o.Scale, sink.MaxPNGPixels)
	}
	return ValidateFormats(o.Formats)
}

// Bounds returns the layout container.
func (o *Options) Bounds() geom.Bounds {
	return geom.NewBounds(0, 0, o.Width, o.Height)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ChartType: string(o.ChartType),
		Strategy:  string(o.Manager.FacetStrategy),
		Width:     o.Width,
		Height:    o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Gutters: o.Gutters}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG:
		opts.Titles = !o.NoTitles
	}
	return opts
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
