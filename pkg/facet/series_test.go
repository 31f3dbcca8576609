package facet

import (
	"slices"
	"testing"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/selection"
)

func names(series []Series) []string {
	out := make([]string, len(series))
	for i, s := range series {
		out[i] = s.Name
	}
	return out
}

func TestEntityFacets(t *testing.T) {
	fc := New(testManager(chart.FacetEntity, "A", "B", "C"))
	series := fc.Series()

	if got, want := names(series), []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Fatalf("facets = %v, want %v", got, want)
	}
	for _, s := range series {
		if s.Manager.SeriesStrategy != chart.SeriesColumn {
			t.Errorf("%s: SeriesStrategy = %q, want column", s.Name, s.Manager.SeriesStrategy)
		}
		if s.Manager.HideLegend == nil || !*s.Manager.HideLegend {
			t.Errorf("%s: single y-column facet should hide its legend", s.Name)
		}
		if got := s.Manager.Table.EntityNames(); !slices.Equal(got, []string{s.Name}) {
			t.Errorf("%s: table entities = %v", s.Name, got)
		}
		if got := s.Manager.SelectedEntityNames(); !slices.Equal(got, []string{s.Name}) {
			t.Errorf("%s: selection = %v", s.Name, got)
		}
		if s.Color != BackgroundColor {
			t.Errorf("%s: Color = %q", s.Name, s.Color)
		}
	}
}

func TestEntityFacetsManyColumns(t *testing.T) {
	m := testManager(chart.FacetEntity, "A", "B")
	m.YColumnSlugs = []string{"gdp", "pop"}
	for _, s := range New(m).Series() {
		if s.Manager.HideLegend != nil {
			t.Errorf("%s: legend should be left to placement with several columns", s.Name)
		}
	}
}

func TestEntityFacetsLegendNeedsListedColumn(t *testing.T) {
	tests := []struct {
		name     string
		slugs    []string
		slug     string
		wantHide bool
	}{
		{"one listed column", []string{"gdp"}, "", true},
		{"singular slug only", nil, "gdp", false},
		{"auto-detected", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testManager(chart.FacetEntity, "A", "B")
			m.YColumnSlugs = tt.slugs
			m.YColumnSlug = tt.slug
			for _, s := range New(m).Series() {
				if got := s.Manager.HideLegend != nil && *s.Manager.HideLegend; got != tt.wantHide {
					t.Errorf("%s: hide legend = %v, want %v", s.Name, got, tt.wantHide)
				}
			}
		})
	}
}

func TestColumnFacets(t *testing.T) {
	m := testManager(chart.FacetColumn, "A", "B", "C")
	m.YColumnSlugs = []string{"gdp", "pop"}
	series := New(m).Series()

	if got, want := names(series), []string{"GDP", "Population"}; !slices.Equal(got, want) {
		t.Fatalf("facets = %v, want %v", got, want)
	}
	for i, slug := range []string{"gdp", "pop"} {
		s := series[i]
		if s.Manager.SeriesStrategy != chart.SeriesEntity {
			t.Errorf("%s: SeriesStrategy = %q, want entity", s.Name, s.Manager.SeriesStrategy)
		}
		if s.Manager.YColumnSlug != slug || !slices.Equal(s.Manager.YColumnSlugs, []string{slug}) {
			t.Errorf("%s: y columns = %q %v", s.Name, s.Manager.YColumnSlug, s.Manager.YColumnSlugs)
		}
		if got := s.Manager.SelectedEntityNames(); !slices.Equal(got, []string{"A", "B", "C"}) {
			t.Errorf("%s: selection = %v", s.Name, got)
		}
	}
}

func TestColumnFacetsAutoDetect(t *testing.T) {
	m := testManager(chart.FacetColumn, "A")
	m.YColumnSlugs = nil
	if got, want := names(New(m).Series()), []string{"GDP", "Population"}; !slices.Equal(got, want) {
		t.Errorf("facets = %v, want %v", got, want)
	}
}

func TestNoFacetStrategy(t *testing.T) {
	for _, strategy := range []chart.FacetStrategy{"", chart.FacetNone} {
		series := New(testManager(strategy, "A", "B")).Series()
		if len(series) != 1 {
			t.Fatalf("strategy %q: got %d facets, want 1", strategy, len(series))
		}
		if series[0].Name != "GDP" {
			t.Errorf("Name = %q, want GDP", series[0].Name)
		}
		if got := series[0].Manager.SelectedEntityNames(); !slices.Equal(got, []string{"A", "B"}) {
			t.Errorf("selection = %v", got)
		}
	}
}

func TestEmptyFacets(t *testing.T) {
	tests := []struct {
		name string
		m    chart.Manager
	}{
		{"entity without selection", testManager(chart.FacetEntity)},
		{"none without selection", testManager(chart.FacetNone)},
		{"column without columns", chart.Manager{Selection: selection.New("A"), FacetStrategy: chart.FacetColumn}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := New(tt.m)
			if n := len(fc.Series()); n != 0 {
				t.Errorf("got %d facets, want 0", n)
			}
			placed := fc.PlacedSeries()
			if placed == nil || len(placed) != 0 {
				t.Errorf("PlacedSeries() = %v, want empty list", placed)
			}
		})
	}
}
