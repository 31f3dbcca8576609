package table

// sampleTable returns a small GDP/population table used across tests.
func sampleTable() *Table {
	return New(
		[]Column{
			{Slug: "gdp", Name: "GDP", Unit: "$"},
			{Slug: "pop", Name: "Population"},
		},
		[]Row{
			{Entity: "France", Time: 2000, Values: map[string]float64{"gdp": 1.3e12, "pop": 59e6}},
			{Entity: "France", Time: 2010, Values: map[string]float64{"gdp": 2.6e12, "pop": 65e6}},
			{Entity: "Germany", Time: 2000, Values: map[string]float64{"gdp": 1.9e12}},
			{Entity: "Germany", Time: 2010, Values: map[string]float64{"gdp": 3.4e12, "pop": 81e6}},
			{Entity: "Chile", Time: 1990, Values: map[string]float64{"pop": 13e6}},
		},
	)
}
