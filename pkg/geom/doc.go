// Package geom provides the rectangle arithmetic used by the facet layout engine.
//
// # Overview
//
// A [Bounds] is an immutable rectangle in screen coordinates (origin at the
// top-left, Y increasing downward). All operations return new values:
//
//   - [Bounds.Pad] shrinks from the given edges
//   - [Bounds.Expand] grows outward on the given edges
//   - [Bounds.Grid] splits a rectangle into n cells laid out row-major
//
// Width and height never go negative; operations clamp at zero.
//
// # Grids
//
// [Bounds.Grid] arranges n cells into the smallest roughly-square grid
// (columns = ⌈√n⌉, rows = ⌈n/columns⌉). Each [Cell] records the outer
// [Edges] it touches, which the facet engine uses to decide which panels
// draw shared axes:
//
//	cells := geom.DefaultBounds.Grid(4, geom.GridPadding{RowPadding: 20, ColumnPadding: 10})
//	for _, c := range cells {
//	    fmt.Println(c.Bounds, c.Edges)
//	}
package geom
