package facet

import (
	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/geom"
	"github.com/matzehuels/facetgrid/pkg/selection"
)

// BackgroundColor is the panel color every facet currently gets.
const BackgroundColor = "transparent"

// Series is one logical facet before placement.
type Series struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	// ChartType overrides the chart type for this facet when set.
	ChartType chart.TypeName `json:"chart_type,omitempty"`
	// Manager holds only the overrides this facet applies.
	Manager chart.Manager `json:"manager"`
}

// PlacedSeries is a facet with final bounds and fully merged configuration.
type PlacedSeries struct {
	Name          string         `json:"name"`
	Color         string         `json:"color"`
	ChartType     chart.TypeName `json:"chart_type"`
	Bounds        geom.Bounds    `json:"bounds"`
	ContentBounds geom.Bounds    `json:"content_bounds"`
	Edges         geom.Edges     `json:"edges"`
	Title         Title          `json:"title"`
	Manager       chart.Manager  `json:"manager"`
}

// Title is where a facet's name is drawn: left-aligned with the content area,
// baseline just above it.
type Title struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
}

// resolveSeries returns the facets for the manager's strategy.
func resolveSeries(m chart.Manager) []Series {
	switch m.FacetStrategy {
	case chart.FacetEntity:
		return entityFacets(m)
	case chart.FacetColumn:
		return columnFacets(m)
	}
	return wholeChartFacet(m)
}

// entityFacets yields one facet per selected entity, each scoped to that
// entity's rows and drawing the y-columns as series. When exactly one
// y-column is listed in YColumnSlugs the legend would repeat the facet title
// and is hidden. Auto-detected columns and a lone YColumnSlug leave the
// legend to placement.
func entityFacets(m chart.Manager) []Series {
	names := m.SelectedEntityNames()
	if len(names) == 0 {
		return nil
	}
	tbl := m.Table.FilterByEntityNames(names)
	singleColumn := len(m.YColumnSlugs) == 1

	out := make([]Series, len(names))
	for i, name := range names {
		override := chart.Manager{
			Table:          tbl.FilterByEntityNames([]string{name}),
			Selection:      selection.New(name),
			SeriesStrategy: chart.SeriesColumn,
		}
		if singleColumn {
			override.HideLegend = chart.Bool(true)
		}
		out[i] = Series{Name: name, Color: BackgroundColor, Manager: override}
	}
	return out
}

// columnFacets yields one facet per y-column, each showing every selected
// entity as a series.
func columnFacets(m chart.Manager) []Series {
	slugs := chart.AutoDetectYColumnSlugs(m)
	out := make([]Series, len(slugs))
	for i, slug := range slugs {
		col, _ := m.Table.Get(slug)
		out[i] = Series{
			Name:  col.DisplayName(),
			Color: BackgroundColor,
			Manager: chart.Manager{
				Selection:      m.Selection.Clone(),
				YColumnSlug:    slug,
				YColumnSlugs:   []string{slug},
				SeriesStrategy: chart.SeriesEntity,
			},
		}
	}
	return out
}

// wholeChartFacet yields a single facet showing the chart undivided, or none
// when nothing is selected.
func wholeChartFacet(m chart.Manager) []Series {
	if m.Selection.Len() == 0 {
		return nil
	}
	var name string
	if slugs := chart.AutoDetectYColumnSlugs(m); len(slugs) == 1 {
		col, _ := m.Table.Get(slugs[0])
		name = col.DisplayName()
	}
	return []Series{{
		Name:  name,
		Color: BackgroundColor,
		Manager: chart.Manager{
			Selection:      m.Selection.Clone(),
			SeriesStrategy: m.SeriesStrategy,
		},
	}}
}
