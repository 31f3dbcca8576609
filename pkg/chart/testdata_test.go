package chart

import (
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

func testTable() *table.Table {
	return table.New(
		[]table.Column{{Slug: "gdp", Name: "GDP"}, {Slug: "pop", Name: "Population"}},
		[]table.Row{
			{Entity: "France", Time: 2010, Values: map[string]float64{"gdp": 20, "pop": 65}},
			{Entity: "France", Time: 2000, Values: map[string]float64{"gdp": 10, "pop": 60}},
			{Entity: "Chile", Time: 2000, Values: map[string]float64{"gdp": 5, "pop": 15}},
			{Entity: "Chile", Time: 2010, Values: map[string]float64{"gdp": 8}},
		},
	)
}

func testManager(ys ...string) Manager {
	return Manager{
		Table:        testTable(),
		Selection:    selection.New("France", "Chile"),
		YColumnSlugs: ys,
	}
}
