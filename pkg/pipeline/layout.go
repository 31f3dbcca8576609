package pipeline

import (
	"fmt"

	"github.com/matzehuels/facetgrid/pkg/cache"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout places the facets of t. When the manager selects no entities,
// every entity of the table is selected in table order.
func ComputeLayout(t *table.Table, opts Options) facet.Layout {
	m := opts.Manager
	m.Table = t
	if m.Selection == nil {
		m.Selection = selection.New(t.EntityNames()...)
	}
	return facet.New(m,
		facet.WithBounds(opts.Bounds()),
		facet.WithChartType(opts.ChartType),
	).Layout()
}

// InputHash identifies a layout input: the table contents and the manager
// configuration. Size and chart type are part of the layout cache key instead.
func InputHash(t *table.Table, opts Options) (string, error) {
	h, err := cache.HashJSON(struct {
		Table   *table.Table `json:"table"`
		Manager any          `json:"manager"`
	}{t, opts.Manager})
	if err != nil {
		return "", fmt.Errorf("hash layout input: %w", err)
	}
	return h, nil
}
