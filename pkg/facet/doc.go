// Package facet lays out a chart as a grid of small panels ("facets").
//
// A faceted chart splits its data by entity or by y-column, sizes every panel
// from a uniform grid, and reconciles the panels' axes so that their plotted
// content areas line up.
//
// # Pipeline
//
// Layout runs in four steps, all pure functions of the [chart.Manager]:
//
//  1. Resolve facets ([Chart.Series]): one per selected entity for
//     [chart.FacetEntity], one per y-column for [chart.FacetColumn], one for
//     the whole chart for [chart.FacetNone].
//  2. Intermediate pass: scale the font down with the facet count, split the
//     container below the title band into a grid, merge configuration for each
//     facet and build a measurement chart per cell.
//  3. Reconcile axes: every panel gets the largest measured axis size as its
//     minimum size. The x axis always shares one domain across facets; the y
//     axis does so only with [chart.AxisRangeShared]. A shared axis reserves a
//     gutter once on the container, drawn by the panels on its edge only. A
//     shared bottom axis is drawn above the top row.
//  4. Finalize: apply reconciled configuration, hide shared axes on interior
//     panels and compute content bounds inside the remaining axes.
//
// # Usage
//
//	fc := facet.New(manager,
//	    facet.WithBounds(geom.NewBounds(0, 0, 960, 640)),
//	    facet.WithChartType(chart.StackedArea),
//	)
//	layout := fc.Layout()
//	for _, p := range layout.Series {
//	    fmt.Println(p.Name, p.Bounds, p.ContentBounds)
//	}
//
// Measurement charts come from a [Factory], by default [chart.Default]. Unknown
// chart types fall back to [chart.DefaultType]. The engine never fails: facets
// without data keep invalid domains and are excluded from shared extents.
package facet
