package facet

import (
	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/geom"
)

// Factory builds the measurement chart for one facet. [*chart.Registry]
// implements it.
type Factory interface {
	New(name chart.TypeName, bounds geom.Bounds, m chart.Manager) chart.Chart
}

// FactoryFunc adapts a function to [Factory].
type FactoryFunc func(name chart.TypeName, bounds geom.Bounds, m chart.Manager) chart.Chart

func (f FactoryFunc) New(name chart.TypeName, bounds geom.Bounds, m chart.Manager) chart.Chart {
	return f(name, bounds, m)
}

// Option configures a [Chart].
type Option func(*Chart)

// WithBounds sets the container. Defaults to [geom.DefaultBounds].
func WithBounds(b geom.Bounds) Option {
	return func(c *Chart) { c.bounds = b }
}

// WithChartType sets the chart type drawn in every facet. Defaults to
// [chart.DefaultType].
func WithChartType(name chart.TypeName) Option {
	return func(c *Chart) {
		if name != "" {
			c.chartType = name
		}
	}
}

// WithFactory replaces the measurement chart factory.
func WithFactory(f Factory) Option {
	return func(c *Chart) {
		if f != nil {
			c.factory = f
		}
	}
}

// Chart is a faceted chart. It holds only inputs; every method recomputes
// its result, so calling them repeatedly yields equal output.
type Chart struct {
	manager   chart.Manager
	bounds    geom.Bounds
	chartType chart.TypeName
	factory   Factory
}

// New returns a faceted chart for m.
func New(m chart.Manager, opts ...Option) *Chart {
	c := &Chart{
		manager:   m,
		bounds:    geom.DefaultBounds,
		chartType: chart.DefaultType,
		factory:   chart.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout is the complete placement of a faceted chart.
type Layout struct {
	Strategy  chart.FacetStrategy `json:"strategy"`
	ChartType chart.TypeName      `json:"chart_type"`
	FontSize  float64             `json:"font_size"`
	Bounds    geom.Bounds         `json:"bounds"`
	Series    []PlacedSeries      `json:"series"`
}

// Strategy returns the facet strategy, [chart.FacetNone] when unset.
func (c *Chart) Strategy() chart.FacetStrategy {
	if c.manager.FacetStrategy == "" {
		return chart.FacetNone
	}
	return c.manager.FacetStrategy
}

// Series returns the facets in display order.
func (c *Chart) Series() []Series {
	m := c.manager
	m.FacetStrategy = c.Strategy()
	return resolveSeries(m)
}

// FontSize returns the font size for titles and axes of every facet.
func (c *Chart) FontSize() float64 {
	return FontSize(len(c.Series()), c.manager.BaseFontSize)
}

// Bounds returns the container below the title band.
func (c *Chart) Bounds() geom.Bounds {
	return c.bounds.PadTop(c.FontSize() + titleBandPadding)
}

// Layout places every facet.
func (c *Chart) Layout() Layout {
	return Layout{
		Strategy:  c.Strategy(),
		ChartType: c.chartType,
		FontSize:  c.FontSize(),
		Bounds:    c.bounds,
		Series:    c.PlacedSeries(),
	}
}

// PlacedSeries places every facet in display order.
func (c *Chart) PlacedSeries() []PlacedSeries {
	series := c.Series()
	if len(series) == 0 {
		return []PlacedSeries{}
	}
	fontSize := FontSize(len(series), c.manager.BaseFontSize)
	container := c.bounds.PadTop(fontSize + titleBandPadding)

	placed := c.intermediate(series, container, fontSize)
	return c.reconcile(series, placed, container, fontSize)
}

// ===== Intermediate pass =====

// intermediate places facets on a plain grid and merges their configuration.
// The result only feeds measurement; bounds change during reconciliation.
func (c *Chart) intermediate(series []Series, container geom.Bounds, fontSize float64) []PlacedSeries {
	count := len(series)
	cells := container.Grid(count, ChartPadding(count, fontSize))

	var lineStrokeWidth float64
	if count > denseCount {
		lineStrokeWidth = denseStrokeWidth
	}

	compact := chart.Bool(count > compactCount)
	globalX := chart.AxisConfig{CompactLabels: compact}
	globalY := chart.AxisConfig{CompactLabels: compact}

	// Independently scaled entity facets are read for their trend. Nice
	// domains and dense ticks distort trends on small panels.
	if c.caresAboutTrend() {
		globalY.Nice = chart.Bool(false)
		if !c.manager.YAxisConfig.IsLog() {
			globalY.MaxTicks = chart.Int(trendMaxTicks)
		}
	}

	base := chart.Manager{
		Table:           c.manager.Table,
		BaseFontSize:    fontSize,
		LineStrokeWidth: lineStrokeWidth,
		HidePoints:      chart.Bool(true),
		YColumnSlug:     c.manager.YColumnSlug,
		XColumnSlug:     c.manager.XColumnSlug,
		YColumnSlugs:    c.manager.YColumnSlugs,
		ColorColumnSlug: c.manager.ColorColumnSlug,
		SizeColumnSlug:  c.manager.SizeColumnSlug,
		IsRelativeMode:  c.manager.IsRelativeMode,
		XAxisConfig:     globalX.Merge(c.manager.XAxisConfig),
		YAxisConfig:     globalY.Merge(c.manager.YAxisConfig),
	}

	out := make([]PlacedSeries, count)
	for i, s := range series {
		cell := cells[i]
		m := base
		m.HideLegend = chart.Bool(!cell.Edges.Has(geom.Right))
		out[i] = PlacedSeries{
			Name:          s.Name,
			Color:         s.Color,
			ChartType:     c.chartTypeFor(s),
			Bounds:        cell.Bounds,
			ContentBounds: cell.Bounds,
			Edges:         cell.Edges,
			Manager:       m.Merge(s.Manager),
		}
	}
	return out
}

func (c *Chart) chartTypeFor(s Series) chart.TypeName {
	if s.ChartType != "" {
		return s.ChartType
	}
	return c.chartType
}

func (c *Chart) uniformX() bool { return true }

func (c *Chart) uniformY() bool { return c.manager.YAxisConfig.IsShared() }

func (c *Chart) caresAboutTrend() bool {
	return !c.uniformY() && c.Strategy() == chart.FacetEntity
}

// ===== Reconciliation =====

// reconcile measures every facet, shares axis sizes and domains, and places
// the facets on the final grid.
func (c *Chart) reconcile(series []Series, placed []PlacedSeries, container geom.Bounds, fontSize float64) []PlacedSeries {
	instances := make([]chart.Chart, len(placed))
	for i, p := range placed {
		instances[i] = c.factory.New(p.ChartType, p.Bounds, p.Manager)
	}

	var globalX, globalY chart.AxisConfig
	shared := geom.Padding{}

	largestX := largestAxis(instances, xAxisOf)
	if largestX >= 0 {
		globalX.MinSize = chart.Float(xAxisOf(instances[largestX]).Size())
	}
	largestY := largestAxis(instances, yAxisOf)
	if largestY >= 0 {
		globalY.MinSize = chart.Float(yAxisOf(instances[largestY]).Size())
	}

	if c.uniformX() {
		shareAxis(instances, xAxisOf, largestX, &globalX, shared)
	}
	if c.uniformY() {
		shareAxis(instances, yAxisOf, largestY, &globalY, shared)
	}

	// Reserve shared gutters once on the container so that every panel keeps
	// an equal content area.
	padding := shared.MoveBottomToTop()
	cells := container.Pad(padding).Grid(len(placed), ChartPadding(len(placed), fontSize))

	out := make([]PlacedSeries, len(placed))
	for i, p := range placed {
		cell := cells[i]
		bounds := cell.Bounds
		for _, edge := range cell.Edges.List() {
			bounds = bounds.Expand(geom.Padding{edge: padding.Get(edge)})
		}

		m := p.Manager.
			Merge(chart.Manager{XAxisConfig: globalX, YAxisConfig: globalY}).
			Merge(series[i].Manager)
		inst := instances[i]
		if ax := inst.XAxis(); ax != nil {
			m.XAxisConfig.HideAxis = chart.Bool(hideAxis(ax, m.XAxisConfig, shared, cell.Edges))
		}
		if ax := inst.YAxis(); ax != nil {
			m.YAxisConfig.HideAxis = chart.Bool(hideAxis(ax, m.YAxisConfig, shared, cell.Edges))
		}

		content := contentBounds(bounds, m, inst)
		out[i] = PlacedSeries{
			Name:          p.Name,
			Color:         p.Color,
			ChartType:     p.ChartType,
			Bounds:        bounds,
			ContentBounds: content,
			Edges:         cell.Edges,
			Title: Title{
				Text:     p.Name,
				X:        content.X,
				Y:        content.Top() - fontSize*titleShift,
				FontSize: fontSize,
			},
			Manager: m,
		}
	}
	return out
}

func xAxisOf(c chart.Chart) chart.Axis { return c.XAxis() }
func yAxisOf(c chart.Chart) chart.Axis { return c.YAxis() }

// largestAxis returns the index of the first chart with the largest axis
// size, or -1 when no chart has the axis.
func largestAxis(instances []chart.Chart, axisOf func(chart.Chart) chart.Axis) int {
	best := -1
	var bestSize float64
	for i, inst := range instances {
		ax := axisOf(inst)
		if ax == nil {
			continue
		}
		if size := ax.Size(); best < 0 || size > bestSize {
			best, bestSize = i, size
		}
	}
	return best
}

// shareAxis sets cfg to the extent of all facet domains and records the size
// of the largest axis remeasured on that extent as the gutter for its edge.
func shareAxis(instances []chart.Chart, axisOf func(chart.Chart) chart.Axis, largest int, cfg *chart.AxisConfig, shared geom.Padding) {
	var domains []chart.Domain
	for _, inst := range instances {
		if ax := axisOf(inst); ax != nil {
			domains = append(domains, ax.Domain())
		}
	}
	extent := chart.Extent(domains...)
	if extent.Valid {
		cfg.Min = chart.Float(extent.Min)
		cfg.Max = chart.Float(extent.Max)
	}
	if largest < 0 {
		return
	}
	ax := axisOf(instances[largest]).Clone().UpdateDomainPreservingUserSettings(extent)
	size := ax.Size()
	shared[ax.Position()] = size
	cfg.MinSize = chart.Float(size)
}

// hideAxis reports whether a panel on edges skips drawing ax. A shared axis
// is drawn only by panels on its own edge, except a shared bottom axis, which
// the top row draws. An axis hidden by configuration stays hidden.
func hideAxis(ax chart.Axis, cfg chart.AxisConfig, shared geom.Padding, edges geom.Edges) bool {
	if cfg.IsHidden() {
		return true
	}
	pos := ax.Position()
	if !shared.Has(pos) {
		return false
	}
	owner := pos
	if pos == geom.Bottom {
		owner = geom.Top
	}
	return !edges.Has(owner)
}

// contentBounds pads bounds by the minimum size of every visible axis on the
// axis' own edge.
func contentBounds(bounds geom.Bounds, m chart.Manager, inst chart.Chart) geom.Bounds {
	axes := []struct {
		config chart.AxisConfig
		axis   chart.Axis
	}{
		{m.XAxisConfig, inst.XAxis()},
		{m.YAxisConfig, inst.YAxis()},
	}
	for _, a := range axes {
		if a.axis == nil || a.config.IsHidden() || a.config.MinSize == nil {
			continue
		}
		bounds = bounds.Pad(geom.Padding{a.axis.Position(): *a.config.MinSize})
	}
	return bounds
}
