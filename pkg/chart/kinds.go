package chart

import (
	"math"

	"github.com/matzehuels/facetgrid/pkg/geom"
)

// NewLineChart plots values over time. In relative mode values become percent
// change from each series' first non-zero value.
func NewLineChart(bounds geom.Bounds, m Manager) Chart {
	series := buildSeries(m)
	kind := NumericKind
	if m.RelativeMode() {
		series = toRelative(series)
		kind = PercentKind
	}
	fs := m.FontSize()
	return &baseChart{
		name:    LineChart,
		bounds:  bounds,
		manager: m,
		series:  series,
		x:       NewAxis(geom.Bottom, m.XAxisConfig, TimeKind, fs, timeDomain(series)),
		y:       NewAxis(geom.Left, m.YAxisConfig, kind, fs, yDomain(series)),
	}
}

// NewScatterPlot plots the first y-column against the x-column per entity and
// time. Without an x-column it falls back to time on the horizontal axis.
func NewScatterPlot(bounds geom.Bounds, m Manager) Chart {
	fs := m.FontSize()
	c := &baseChart{name: ScatterPlot, bounds: bounds, manager: m}
	if m.XColumnSlug == "" {
		c.series = buildSeries(m)
		c.x = NewAxis(geom.Bottom, m.XAxisConfig, TimeKind, fs, timeDomain(c.series))
		c.y = NewAxis(geom.Left, m.YAxisConfig, NumericKind, fs, yDomain(c.series))
		return c
	}
	c.series = pairedSeries(m)
	c.x = NewAxis(geom.Bottom, m.XAxisConfig, NumericKind, fs, xDomain(c.series))
	c.y = NewAxis(geom.Left, m.YAxisConfig, NumericKind, fs, yDomain(c.series))
	return c
}

func pairedSeries(m Manager) []Series {
	ys := AutoDetectYColumnSlugs(m)
	if len(ys) == 0 {
		return nil
	}
	y := ys[0]
	byEntity := rowsByEntity(m.Table)
	var out []Series
	for _, e := range m.SelectedEntityNames() {
		s := Series{Name: e, Entity: e, Column: y}
		for _, r := range byEntity[e] {
			xv, okx := r.Value(m.XColumnSlug)
			yv, oky := r.Value(y)
			if okx && oky {
				s.Points = append(s.Points, Point{Time: r.Time, X: xv, Y: yv})
			}
		}
		out = append(out, s)
	}
	return out
}

// NewStackedArea stacks series over time.
func NewStackedArea(bounds geom.Bounds, m Manager) Chart {
	return newStacked(StackedArea, bounds, m)
}

// NewStackedBar stacks series per time as bars.
func NewStackedBar(bounds geom.Bounds, m Manager) Chart {
	return newStacked(StackedBar, bounds, m)
}

// newStacked builds a stacked chart whose y domain runs from 0 to the largest
// stack. In relative mode every stack is normalized to 100.
func newStacked(name TypeName, bounds geom.Bounds, m Manager) Chart {
	series := buildSeries(m)
	fs := m.FontSize()
	var yd Domain
	kind := NumericKind
	if sums := stackSums(series); len(sums) > 0 {
		if m.RelativeMode() {
			yd = NewDomain(0, 100)
			kind = PercentKind
		} else {
			top := 0.0
			for _, v := range sums {
				top = math.Max(top, v)
			}
			yd = NewDomain(0, top)
		}
	}
	return &baseChart{
		name:    name,
		bounds:  bounds,
		manager: m,
		series:  series,
		x:       NewAxis(geom.Bottom, m.XAxisConfig, TimeKind, fs, timeDomain(series)),
		y:       NewAxis(geom.Left, m.YAxisConfig, kind, fs, yd),
	}
}

// stackSums adds up the positive values of all series per time.
func stackSums(series []Series) map[int]float64 {
	sums := make(map[int]float64)
	for _, s := range series {
		for _, p := range s.Points {
			sums[p.Time] += math.Max(p.Y, 0)
		}
	}
	return sums
}

// NewDiscreteBar draws one horizontal bar per series at its latest value.
// Its value axis is horizontal, configured by XAxisConfig and always
// includes zero. It has no y axis.
func NewDiscreteBar(bounds geom.Bounds, m Manager) Chart {
	series := latestValues(buildSeries(m))
	d := yDomain(series)
	if d.Valid {
		d = d.Include(0)
	}
	return &baseChart{
		name:    DiscreteBar,
		bounds:  bounds,
		manager: m,
		series:  series,
		x:       NewAxis(geom.Bottom, m.XAxisConfig, NumericKind, m.FontSize(), d),
	}
}

func latestValues(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		last := s.Points[len(s.Points)-1]
		s.Points = []Point{last}
		out = append(out, s)
	}
	return out
}
