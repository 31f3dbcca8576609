package chart

import (
	"slices"

	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// AxisConfig holds user and engine settings for one axis. Nil and empty
// fields are unset and inherit from lower layers when merged.
type AxisConfig struct {
	Min            *float64       `json:"min,omitempty"`
	Max            *float64       `json:"max,omitempty"`
	MinSize        *float64       `json:"min_size,omitempty"`
	HideAxis       *bool          `json:"hide_axis,omitempty"`
	Nice           *bool          `json:"nice,omitempty"`
	MaxTicks       *int           `json:"max_ticks,omitempty"`
	CompactLabels  *bool          `json:"compact_labels,omitempty"`
	ScaleType      ScaleType      `json:"scale_type,omitempty"`
	FacetAxisRange FacetAxisRange `json:"facet_axis_range,omitempty"`
	Label          string         `json:"label,omitempty"`
}

// Merge returns c with every field set on over taking precedence.
func (c AxisConfig) Merge(over AxisConfig) AxisConfig {
	out := c
	if over.Min != nil {
		out.Min = over.Min
	}
	if over.Max != nil {
		out.Max = over.Max
	}
	if over.MinSize != nil {
		out.MinSize = over.MinSize
	}
	if over.HideAxis != nil {
		out.HideAxis = over.HideAxis
	}
	if over.Nice != nil {
		out.Nice = over.Nice
	}
	if over.MaxTicks != nil {
		out.MaxTicks = over.MaxTicks
	}
	if over.CompactLabels != nil {
		out.CompactLabels = over.CompactLabels
	}
	if over.ScaleType != "" {
		out.ScaleType = over.ScaleType
	}
	if over.FacetAxisRange != "" {
		out.FacetAxisRange = over.FacetAxisRange
	}
	if over.Label != "" {
		out.Label = over.Label
	}
	return out
}

// IsHidden reports whether the axis is switched off.
func (c AxisConfig) IsHidden() bool { return c.HideAxis != nil && *c.HideAxis }

// IsNice reports whether the domain snaps to round numbers. Defaults to true.
func (c AxisConfig) IsNice() bool { return c.Nice == nil || *c.Nice }

// IsCompact reports whether tick labels abbreviate large numbers.
func (c AxisConfig) IsCompact() bool { return c.CompactLabels != nil && *c.CompactLabels }

// IsLog reports whether the axis uses a logarithmic scale.
func (c AxisConfig) IsLog() bool { return c.ScaleType == ScaleLog }

// IsShared reports whether facets share this axis' domain.
func (c AxisConfig) IsShared() bool { return c.FacetAxisRange == AxisRangeShared }

// MaxTickLimit is the largest tick count an axis will generate.
const MaxTickLimit = 100

// TickLimit returns MaxTicks, or def when unset, clamped to [1, MaxTickLimit].
func (c AxisConfig) TickLimit(def int) int {
	n := def
	if c.MaxTicks != nil {
		n = *c.MaxTicks
	}
	return min(max(n, 1), MaxTickLimit)
}

// Validate checks the enum fields and the tick limit.
func (c AxisConfig) Validate() error {
	if _, err := ParseScaleType(string(c.ScaleType)); err != nil {
		return err
	}
	if _, err := ParseFacetAxisRange(string(c.FacetAxisRange)); err != nil {
		return err
	}
	if c.MaxTicks != nil && (*c.MaxTicks < 1 || *c.MaxTicks > MaxTickLimit) {
		return errors.New(errors.ErrCodeInvalidConfig, "max_ticks must be between 1 and %d", MaxTickLimit)
	}
	return nil
}

// Manager is the full configuration a chart is built from.
type Manager struct {
	Table           *table.Table     `json:"-"`
	Selection       *selection.Array `json:"selection,omitempty"`
	BaseFontSize    float64          `json:"base_font_size,omitempty"`
	LineStrokeWidth float64          `json:"line_stroke_width,omitempty"`
	HideLegend      *bool            `json:"hide_legend,omitempty"`
	HidePoints      *bool            `json:"hide_points,omitempty"`
	YColumnSlug     string           `json:"y_column_slug,omitempty"`
	YColumnSlugs    []string         `json:"y_column_slugs,omitempty"`
	XColumnSlug     string           `json:"x_column_slug,omitempty"`
	ColorColumnSlug string           `json:"color_column_slug,omitempty"`
	SizeColumnSlug  string           `json:"size_column_slug,omitempty"`
	IsRelativeMode  *bool            `json:"is_relative_mode,omitempty"`
	SeriesStrategy  SeriesStrategy   `json:"series_strategy,omitempty"`
	FacetStrategy   FacetStrategy    `json:"facet_strategy,omitempty"`
	XAxisConfig     AxisConfig       `json:"x_axis,omitempty"`
	YAxisConfig     AxisConfig       `json:"y_axis,omitempty"`
}

// Merge returns m with every field set on over taking precedence.
// Axis configurations merge field by field.
func (m Manager) Merge(over Manager) Manager {
	out := m
	if over.Table != nil {
		out.Table = over.Table
	}
	if over.Selection != nil {
		out.Selection = over.Selection
	}
	if over.BaseFontSize != 0 {
		out.BaseFontSize = over.BaseFontSize
	}
	if over.LineStrokeWidth != 0 {
		out.LineStrokeWidth = over.LineStrokeWidth
	}
	if over.HideLegend != nil {
		out.HideLegend = over.HideLegend
	}
	if over.HidePoints != nil {
		out.HidePoints = over.HidePoints
	}
	if over.YColumnSlug != "" {
		out.YColumnSlug = over.YColumnSlug
	}
	if len(over.YColumnSlugs) > 0 {
		out.YColumnSlugs = slices.Clone(over.YColumnSlugs)
	}
	if over.XColumnSlug != "" {
		out.XColumnSlug = over.XColumnSlug
	}
	if over.ColorColumnSlug != "" {
		out.ColorColumnSlug = over.ColorColumnSlug
	}
	if over.SizeColumnSlug != "" {
		out.SizeColumnSlug = over.SizeColumnSlug
	}
	if over.IsRelativeMode != nil {
		out.IsRelativeMode = over.IsRelativeMode
	}
	if over.SeriesStrategy != "" {
		out.SeriesStrategy = over.SeriesStrategy
	}
	if over.FacetStrategy != "" {
		out.FacetStrategy = over.FacetStrategy
	}
	out.XAxisConfig = m.XAxisConfig.Merge(over.XAxisConfig)
	out.YAxisConfig = m.YAxisConfig.Merge(over.YAxisConfig)
	return out
}

// FontSize returns BaseFontSize, or [DefaultFontSize] when unset.
func (m Manager) FontSize() float64 {
	if m.BaseFontSize > 0 {
		return m.BaseFontSize
	}
	return DefaultFontSize
}

// RelativeMode reports whether values are shown relative to their start.
func (m Manager) RelativeMode() bool { return m.IsRelativeMode != nil && *m.IsRelativeMode }

// SelectedEntityNames returns the selection, or nil when none is set.
func (m Manager) SelectedEntityNames() []string { return m.Selection.SelectedEntityNames() }

// AutoDetectYColumnSlugs returns the y-columns a chart plots: YColumnSlugs when
// set, else YColumnSlug, else every value column that is not used as the x,
// color or size column.
func AutoDetectYColumnSlugs(m Manager) []string {
	if len(m.YColumnSlugs) > 0 {
		return slices.Clone(m.YColumnSlugs)
	}
	if m.YColumnSlug != "" {
		return []string{m.YColumnSlug}
	}
	var out []string
	for _, slug := range m.Table.NumericColumnSlugs() {
		if slug == m.XColumnSlug || slug == m.ColorColumnSlug || slug == m.SizeColumnSlug {
			continue
		}
		out = append(out, slug)
	}
	return out
}
