package facet

import (
	"math"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/geom"
)

const (
	// MinFontSize is the smallest font size used for many facets.
	MinFontSize = 8.0

	// titleBandPadding separates the title band from the grid.
	titleBandPadding = 10.0

	// titleShift places a facet title above its content area, in em.
	titleShift = 0.9

	// denseStrokeWidth thins lines once the grid holds more than denseCount facets.
	denseStrokeWidth = 1.5
	denseCount       = 16

	// compactCount is the facet count above which tick labels are abbreviated.
	compactCount = 2

	// trendMaxTicks caps y ticks on independently scaled entity facets.
	trendMaxTicks = 3
)

// FontSize returns the font size for count facets. It never increases with
// count and never drops below [MinFontSize] unless base is smaller already.
func FontSize(count int, base float64) float64 {
	if base <= 0 {
		base = chart.DefaultFontSize
	}
	var step float64
	switch {
	case count <= 1:
		step = 0
	case count <= 4:
		step = 2
	case count <= 9:
		step = 4
	case count <= 16:
		step = 6
	case count <= 36:
		step = 8
	default:
		step = 10
	}
	return math.Min(base, math.Max(MinFontSize, base-step))
}

// ChartPadding returns the gaps between facet cells. Rows leave room for the
// facet titles; small grids get wider column gaps.
func ChartPadding(count int, fontSize float64) geom.GridPadding {
	columnEm := 1.0
	if count <= 4 {
		columnEm = 2
	}
	return geom.GridPadding{
		RowPadding:    math.Round(fontSize * 3.5),
		ColumnPadding: math.Round(fontSize * columnEm),
	}
}
