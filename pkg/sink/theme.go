package sink

import (
	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/geom"
)

// Theme holds the colors used by the wireframe sinks.
type Theme struct {
	Background string
	Panel      string
	Content    string
	Gutter     string
	Title      string
}

// DefaultTheme matches the muted palette of published charts.
var DefaultTheme = Theme{
	Background: "#ffffff",
	Panel:      "#c8ced6",
	Content:    "#f4f6f8",
	Gutter:     "#e1e7ee",
	Title:      "#1d3d63",
}

// gutter is the strip between a panel's bounds and its content area that a
// visible axis occupies.
type gutter struct {
	position geom.Position
	bounds   geom.Bounds
}

// gutters returns the strips reserved by the panel's visible axes.
func gutters(p facet.PlacedSeries) []gutter {
	var out []gutter
	add := func(pos geom.Position, cfg chart.AxisConfig) {
		if cfg.IsHidden() || cfg.MinSize == nil || *cfg.MinSize <= 0 {
			return
		}
		if g, ok := strip(p, pos, *cfg.MinSize); ok {
			out = append(out, gutter{position: pos, bounds: g})
		}
	}
	add(geom.Bottom, p.Manager.XAxisConfig)
	if p.ChartType != chart.DiscreteBar {
		add(geom.Left, p.Manager.YAxisConfig)
	}
	return out
}

func strip(p facet.PlacedSeries, pos geom.Position, size float64) (geom.Bounds, bool) {
	c := p.ContentBounds
	var b geom.Bounds
	switch pos {
	case geom.Bottom:
		b = geom.NewBounds(c.X, c.Bottom(), c.Width, size)
	case geom.Top:
		b = geom.NewBounds(c.X, c.Top()-size, c.Width, size)
	case geom.Left:
		b = geom.NewBounds(c.Left()-size, c.Y, size, c.Height)
	case geom.Right:
		b = geom.NewBounds(c.Right(), c.Y, size, c.Height)
	default:
		return geom.Bounds{}, false
	}
	return b, b.Width > 0 && b.Height > 0
}
