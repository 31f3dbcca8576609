package facet_test

import (
	"fmt"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/geom"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

func ExampleChart_Layout() {
	tbl := table.New(
		[]table.Column{{Slug: "co2", Name: "CO2 emissions"}},
		[]table.Row{
			{Entity: "France", Time: 2000, Values: map[string]float64{"co2": 380}},
			{Entity: "France", Time: 2020, Values: map[string]float64{"co2": 280}},
			{Entity: "Chile", Time: 2000, Values: map[string]float64{"co2": 50}},
			{Entity: "Chile", Time: 2020, Values: map[string]float64{"co2": 85}},
			{Entity: "Kenya", Time: 2000, Values: map[string]float64{"co2": 8}},
			{Entity: "Kenya", Time: 2020, Values: map[string]float64{"co2": 17}},
		},
	)

	fc := facet.New(chart.Manager{
		Table:         tbl,
		Selection:     selection.New("France", "Chile", "Kenya"),
		YColumnSlug:   "co2",
		FacetStrategy: chart.FacetEntity,
	}, facet.WithBounds(geom.NewBounds(0, 0, 800, 600)))

	layout := fc.Layout()
	fmt.Println("font size:", layout.FontSize)
	for _, p := range layout.Series {
		fmt.Println(p.Name, p.Edges, "y axis hidden:", p.Manager.YAxisConfig.IsHidden(), "x axis hidden:", p.Manager.XAxisConfig.IsHidden())
	}
	// Output:
	// font size: 14
	// France {top,left} y axis hidden: false x axis hidden: false
	// Chile {top,right} y axis hidden: false x axis hidden: false
	// Kenya {bottom,left} y axis hidden: false x axis hidden: true
}
