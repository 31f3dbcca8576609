// Package pkg provides the core libraries for facetgrid small-multiple layouts.
//
// # Overview
//
// Facetgrid splits a long-format data table into a grid of small charts, one
// per entity or per value column, and reconciles the panels so their axes line
// up and repeated axes are drawn only once. The pkg directory is organized
// into four main areas:
//
//  1. [table], [selection] - Input data and the entity selection
//  2. [chart], [facet], [geom] - The layout engine
//  3. [sink] - Output formats (SVG, PNG, JSON)
//  4. [pipeline], [cache], [storage], [config] - Orchestration and persistence
//
// # Architecture
//
// The typical data flow through facetgrid:
//
//	CSV / XLSX / JSON table
//	         ↓
//	    [table] package (columns + rows)
//	         ↓
//	    [chart] package (manager, series, axes)
//	         ↓
//	    [facet] package (split, place on grid, reconcile axes)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Lay out one line chart per country and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/facetgrid/pkg/chart"
//	    "github.com/matzehuels/facetgrid/pkg/facet"
//	    "github.com/matzehuels/facetgrid/pkg/geom"
//	    "github.com/matzehuels/facetgrid/pkg/selection"
//	    "github.com/matzehuels/facetgrid/pkg/sink"
//	    "github.com/matzehuels/facetgrid/pkg/table"
//	)
//
//	// 1. Load the table
//	t, _ := table.ReadFile("gdp.csv")
//
//	// 2. Configure the chart
//	m := chart.Manager{
//	    Table:         t,
//	    Selection:     selection.New(t.EntityNames()...),
//	    FacetStrategy: chart.FacetEntity,
//	}
//
//	// 3. Compute the layout
//	l := facet.New(m, facet.WithBounds(geom.NewBounds(0, 0, 640, 480))).Layout()
//
//	// 4. Render to SVG
//	svg := sink.RenderSVG(l)
//
// # Main Packages
//
// ## Layout Engine
//
// [chart] - Chart types (line, scatter, stacked area, stacked bar, discrete
// bar), their configuration ([chart.Manager], [chart.AxisConfig]) and the
// numeric axes whose sizes drive facet padding.
//
// [facet] - The faceted chart. Resolves the facets for a strategy, places them
// on a grid, then shares axis domains and hides interior axes in a second
// reconciliation pass.
//
// [geom] - Bounds, padding, edges and the grid splitter.
//
// ## Serialization
//
// [table] - Tables read from CSV, XLSX or JSON.
//
// [sink] - Layout output: SVG wireframes, PNG via gg, and layout JSON that
// round-trips through [sink.ReadJSON].
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (load → layout → render) used by both the CLI
// and the HTTP API. Ensures consistent caching across entry points.
//
// [cache] - Layout and artifact caches: file (CLI), Redis (API), null.
//
// [storage] - Stored layout documents addressable by ID: memory, file and
// MongoDB backends.
//
// [config] - TOML chart configuration files.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/facet/...    # Specific package
//	go test -run Example       # Examples only
//
// [table]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/table
// [selection]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/selection
// [chart]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/chart
// [facet]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/facet
// [geom]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/geom
// [sink]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/storage
// [config]: https://pkg.go.dev/github.com/matzehuels/facetgrid/pkg/config
package pkg
