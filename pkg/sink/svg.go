package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/facetgrid/pkg/facet"
)

const panelCSS = `
    .panel { fill: none; stroke-width: 1; stroke-dasharray: 4 3; }
    .content { stroke: none; }
    .gutter { stroke: none; }
    .title { font-family: Lato, "Helvetica Neue", Arial, sans-serif; font-weight: 700; }
    .panel-group:hover .panel { stroke-dasharray: none; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme   Theme
	gutters bool
	titles  bool
}

func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }
func WithGutters() SVGOption      { return func(r *svgRenderer) { r.gutters = true } }
func WithoutTitles() SVGOption    { return func(r *svgRenderer) { r.titles = false } }

// RenderSVG draws the layout's panel wireframes as an SVG document.
func RenderSVG(l facet.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := l.Bounds.Right(), l.Bounds.Bottom()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", panelCSS)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, r.theme.Background)

	for i, p := range l.Series {
		r.renderPanel(&buf, i, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: DefaultTheme, titles: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderPanel(buf *bytes.Buffer, i int, p facet.PlacedSeries) {
	fmt.Fprintf(buf, `  <g class="panel-group" id="facet-%d" data-chart-type="%s">`+"\n", i, escape(string(p.ChartType)))

	c := p.ContentBounds
	fmt.Fprintf(buf, `    <rect class="content" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		c.X, c.Y, c.Width, c.Height, r.theme.Content)

	if r.gutters {
		for _, g := range gutters(p) {
			fmt.Fprintf(buf, `    <rect class="gutter" data-axis="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
				g.position, g.bounds.X, g.bounds.Y, g.bounds.Width, g.bounds.Height, r.theme.Gutter)
		}
	}

	b := p.Bounds
	fmt.Fprintf(buf, `    <rect class="panel" x="%.2f" y="%.2f" width="%.2f" height="%.2f" stroke="%s"/>`+"\n",
		b.X, b.Y, b.Width, b.Height, r.theme.Panel)

	if r.titles && p.Title.Text != "" {
		fmt.Fprintf(buf, `    <text class="title" x="%.2f" y="%.2f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			p.Title.X, p.Title.Y, p.Title.FontSize, r.theme.Title, escape(p.Title.Text))
	}
	buf.WriteString("  </g>\n")
}

func escape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}
