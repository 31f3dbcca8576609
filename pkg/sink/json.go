package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/facetgrid/pkg/facet"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.indent = false } }

// RenderJSON exports the layout as JSON. Each placed facet carries its bounds,
// content bounds, edges, title anchor and fully merged chart configuration, so
// a renderer can draw every panel without further computation. Tables are not
// embedded.
func RenderJSON(l facet.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: true}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Series == nil {
		l.Series = []facet.PlacedSeries{}
	}
	if r.indent {
		return json.MarshalIndent(l, "", "  ")
	}
	return json.Marshal(l)
}

// ReadJSON decodes a layout written by [RenderJSON]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (facet.Layout, error) {
	var l facet.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return facet.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}
