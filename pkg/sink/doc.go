// Package sink renders facet layouts.
//
// A "sink" turns a computed [facet.Layout] into an output format. Facet
// layouts are geometry only, so the visual sinks draw panel wireframes: the
// panel bounds, the content area inside the axes, the axis gutters and the
// facet titles. Chart contents (lines, bars, points) are drawn by whatever
// consumes the layout.
//
//   - SVG: [RenderSVG], hand-written XML
//   - PNG: [RenderPNG], rasterized with fogleman/gg
//   - JSON: [RenderJSON], the layout itself for external renderers
//
// Basic usage:
//
//	layout := facet.New(manager).Layout()
//	svg := sink.RenderSVG(layout, sink.WithGutters())
//	png, err := sink.RenderPNG(layout, sink.WithScale(2))
//
// [ReadJSON] reads a layout written by [RenderJSON], so layouts can be
// computed once and drawn later.
package sink
