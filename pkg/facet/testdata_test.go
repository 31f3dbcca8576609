package facet

import (
	"math"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/geom"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

func testTable() *table.Table {
	var rows []table.Row
	for i, entity := range []string{"A", "B", "C", "D", "E"} {
		scale := float64(i + 1)
		for year := 2000; year <= 2020; year += 5 {
			rows = append(rows, table.Row{
				Entity: entity,
				Time:   year,
				Values: map[string]float64{
					"gdp": scale * float64(year-1990) * 1000,
					"pop": scale * 10,
				},
			})
		}
	}
	return table.New([]table.Column{{Slug: "gdp", Name: "GDP"}, {Slug: "pop", Name: "Population"}}, rows)
}

func testManager(strategy chart.FacetStrategy, entities ...string) chart.Manager {
	return chart.Manager{
		Table:         testTable(),
		Selection:     selection.New(entities...),
		YColumnSlugs:  []string{"gdp"},
		FacetStrategy: strategy,
	}
}

// stubChart is a measurement chart with fixed axes.
type stubChart struct {
	bounds  geom.Bounds
	manager chart.Manager
	x, y    chart.Axis
}

func (s *stubChart) TypeName() chart.TypeName { return chart.LineChart }
func (s *stubChart) Bounds() geom.Bounds      { return s.bounds }
func (s *stubChart) Manager() chart.Manager   { return s.manager }
func (s *stubChart) Series() []chart.Series   { return nil }
func (s *stubChart) XAxis() chart.Axis        { return s.x }
func (s *stubChart) YAxis() chart.Axis        { return s.y }

// stubFactory builds charts whose y domain is looked up by the facet's first
// selected entity. Entities without a domain get no data.
func stubFactory(yDomains map[string]chart.Domain) Factory {
	return FactoryFunc(func(_ chart.TypeName, bounds geom.Bounds, m chart.Manager) chart.Chart {
		var d chart.Domain
		if names := m.SelectedEntityNames(); len(names) > 0 {
			d = yDomains[names[0]]
		}
		return &stubChart{
			bounds:  bounds,
			manager: m,
			x:       chart.NewAxis(geom.Bottom, m.XAxisConfig, chart.TimeKind, m.FontSize(), chart.NewDomain(2000, 2020)),
			y:       chart.NewAxis(geom.Left, m.YAxisConfig, chart.NumericKind, m.FontSize(), d),
		}
	})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
