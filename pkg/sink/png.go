package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/geom"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme   Theme
	scale   float64
	gutters bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGTheme sets the colors.
func WithPNGTheme(t Theme) PNGOption {
	return func(r *pngRenderer) { r.theme = t }
}

// WithPNGGutters shades axis gutters.
func WithPNGGutters() PNGOption {
	return func(r *pngRenderer) { r.gutters = true }
}

// MaxPNGPixels bounds the rasterized canvas area.
const MaxPNGPixels = 64 << 20

// FitsPNG reports whether a width x height layout rasterized at scale stays
// within MaxPNGPixels.
func FitsPNG(width, height, scale float64) bool {
	return math.Ceil(width*scale)*math.Ceil(height*scale) <= MaxPNGPixels
}

// RenderPNG rasterizes the layout's panel wireframes. Titles use the built-in
// bitmap face, so their size does not follow the layout font size.
func RenderPNG(l facet.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: DefaultTheme, scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	if !FitsPNG(l.Bounds.Right(), l.Bounds.Bottom(), r.scale) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png canvas %gx%g at scale %g exceeds %d pixels",
			l.Bounds.Right(), l.Bounds.Bottom(), r.scale, MaxPNGPixels)
	}
	w := int(math.Ceil(l.Bounds.Right() * r.scale))
	h := int(math.Ceil(l.Bounds.Bottom() * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetHexColor(r.theme.Background)
	dc.Clear()

	for _, p := range l.Series {
		fillRect(dc, p.ContentBounds, r.theme.Content)
		if r.gutters {
			for _, g := range gutters(p) {
				fillRect(dc, g.bounds, r.theme.Gutter)
			}
		}

		dc.SetHexColor(r.theme.Panel)
		dc.SetLineWidth(1)
		dc.SetDash(4, 3)
		dc.DrawRectangle(p.Bounds.X, p.Bounds.Y, p.Bounds.Width, p.Bounds.Height)
		dc.Stroke()
		dc.SetDash()

		if p.Title.Text != "" {
			dc.SetHexColor(r.theme.Title)
			dc.DrawString(p.Title.Text, p.Title.X, p.Title.Y)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func fillRect(dc *gg.Context, b geom.Bounds, color string) {
	dc.SetHexColor(color)
	dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	dc.Fill()
}
