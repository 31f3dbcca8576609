package chart

import (
	"cmp"
	"slices"

	"github.com/matzehuels/facetgrid/pkg/geom"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// Chart is a measured chart: bounds, series and axes, but no drawing.
type Chart interface {
	TypeName() TypeName
	Bounds() geom.Bounds
	Manager() Manager
	Series() []Series
	// XAxis returns the horizontal axis, or nil if the kind has none.
	XAxis() Axis
	// YAxis returns the vertical axis, or nil if the kind has none.
	YAxis() Axis
}

// Point is one observation of a series. X is the time for time-based charts.
type Point struct {
	Time int     `json:"time"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Series is one plotted line, area, bar group or scatter cloud.
type Series struct {
	Name   string  `json:"name"`
	Entity string  `json:"entity"`
	Column string  `json:"column"`
	Points []Point `json:"points"`
}

type baseChart struct {
	name    TypeName
	bounds  geom.Bounds
	manager Manager
	series  []Series
	x, y    Axis
}

func (c *baseChart) TypeName() TypeName  { return c.name }
func (c *baseChart) Bounds() geom.Bounds { return c.bounds }
func (c *baseChart) Manager() Manager    { return c.manager }
func (c *baseChart) Series() []Series    { return c.series }
func (c *baseChart) XAxis() Axis         { return c.x }
func (c *baseChart) YAxis() Axis         { return c.y }

// ResolveSeriesStrategy returns the configured series strategy or, when
// unset, column for several y-columns with at most one entity and entity
// otherwise.
func ResolveSeriesStrategy(m Manager) SeriesStrategy {
	if m.SeriesStrategy != "" {
		return m.SeriesStrategy
	}
	if len(AutoDetectYColumnSlugs(m)) > 1 && m.Selection.Len() <= 1 {
		return SeriesColumn
	}
	return SeriesEntity
}

// buildSeries extracts one series per selected entity and y-column. Entity
// strategy orders by entity first, column strategy by column first.
func buildSeries(m Manager) []Series {
	ys := AutoDetectYColumnSlugs(m)
	entities := m.SelectedEntityNames()
	if len(ys) == 0 || len(entities) == 0 {
		return nil
	}
	byEntity := rowsByEntity(m.Table)
	strategy := ResolveSeriesStrategy(m)

	one := func(entity, slug string) Series {
		s := Series{Entity: entity, Column: slug, Name: seriesName(m.Table, strategy, entity, slug, len(ys), len(entities))}
		for _, r := range byEntity[entity] {
			if v, ok := r.Value(slug); ok {
				s.Points = append(s.Points, Point{Time: r.Time, X: float64(r.Time), Y: v})
			}
		}
		return s
	}

	out := make([]Series, 0, len(ys)*len(entities))
	if strategy == SeriesColumn {
		for _, y := range ys {
			for _, e := range entities {
				out = append(out, one(e, y))
			}
		}
		return out
	}
	for _, e := range entities {
		for _, y := range ys {
			out = append(out, one(e, y))
		}
	}
	return out
}

func seriesName(t *table.Table, strategy SeriesStrategy, entity, slug string, numColumns, numEntities int) string {
	col, _ := t.Get(slug)
	switch {
	case strategy == SeriesEntity && numColumns == 1:
		return entity
	case strategy == SeriesColumn && numEntities == 1:
		return col.DisplayName()
	}
	return entity + " - " + col.DisplayName()
}

// rowsByEntity groups rows by entity, each group sorted by time.
func rowsByEntity(t *table.Table) map[string][]table.Row {
	out := make(map[string][]table.Row)
	for _, r := range t.Rows() {
		out[r.Entity] = append(out[r.Entity], r)
	}
	for _, rows := range out {
		slices.SortStableFunc(rows, func(a, b table.Row) int { return cmp.Compare(a.Time, b.Time) })
	}
	return out
}

func timeDomain(series []Series) Domain {
	var d Domain
	for _, s := range series {
		for _, p := range s.Points {
			d = d.Include(float64(p.Time))
		}
	}
	return d
}

func xDomain(series []Series) Domain {
	var d Domain
	for _, s := range series {
		for _, p := range s.Points {
			d = d.Include(p.X)
		}
	}
	return d
}

func yDomain(series []Series) Domain {
	var d Domain
	for _, s := range series {
		for _, p := range s.Points {
			d = d.Include(p.Y)
		}
	}
	return d
}

// toRelative rewrites values as percent change from the first non-zero value
// of each series. Series without such a value lose all points.
func toRelative(series []Series) []Series {
	out := make([]Series, len(series))
	for i, s := range series {
		out[i] = Series{Name: s.Name, Entity: s.Entity, Column: s.Column}
		start := slices.IndexFunc(s.Points, func(p Point) bool { return p.Y != 0 })
		if start < 0 {
			continue
		}
		base := s.Points[start].Y
		for _, p := range s.Points[start:] {
			p.Y = (p.Y/base - 1) * 100
			out[i].Points = append(out[i].Points, p)
		}
	}
	return out
}
