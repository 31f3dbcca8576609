package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/table"
)

func flagTable() *table.Table {
	return table.New(
		[]table.Column{{Slug: "gdp"}, {Slug: "pop"}},
		[]table.Row{
			{Entity: "France", Time: 2000, Values: map[string]float64{"gdp": 1, "pop": 60}},
			{Entity: "Chile", Time: 2000, Values: map[string]float64{"gdp": 2, "pop": 15}},
		},
	)
}

func flagCommand(t *testing.T, f *chartFlags, args map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	for name, value := range args {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	return cmd
}

func TestChartFlagsDefaults(t *testing.T) {
	var f chartFlags
	cmd := flagCommand(t, &f, nil)
	tbl := flagTable()

	opts, err := f.options(cmd, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Table != tbl {
		t.Error("options should carry the table")
	}
	if opts.ChartType != "" || opts.Width != 0 || opts.Manager.Selection != nil {
		t.Errorf("unset flags should leave defaults to the pipeline: %+v", opts)
	}
}

func TestChartFlagsOverrides(t *testing.T) {
	var f chartFlags
	cmd := flagCommand(t, &f, map[string]string{
		"type":     "StackedBar",
		"facet":    "column",
		"y":        "gdp,pop",
		"entity":   "Chile",
		"shared-y": "true",
		"relative": "true",
		"width":    "900",
	})

	opts, err := f.options(cmd, flagTable())
	if err != nil {
		t.Fatal(err)
	}
	if opts.ChartType != chart.StackedBar {
		t.Errorf("ChartType = %s", opts.ChartType)
	}
	m := opts.Manager
	if m.FacetStrategy != chart.FacetColumn {
		t.Errorf("FacetStrategy = %s", m.FacetStrategy)
	}
	if len(m.YColumnSlugs) != 2 {
		t.Errorf("YColumnSlugs = %v", m.YColumnSlugs)
	}
	if got := m.SelectedEntityNames(); len(got) != 1 || got[0] != "Chile" {
		t.Errorf("selection = %v", got)
	}
	if !m.YAxisConfig.IsShared() || !m.RelativeMode() {
		t.Error("shared-y and relative should be set")
	}
	if opts.Width != 900 || opts.Height != 0 {
		t.Errorf("size = %vx%v", opts.Width, opts.Height)
	}
}

func TestChartFlagsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.toml")
	conf := "[chart]\ntype = \"ScatterPlot\"\nfacet = \"entity\"\nheight = 300\n"
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	var f chartFlags
	cmd := flagCommand(t, &f, map[string]string{"config": path, "facet": "none"})
	opts, err := f.options(cmd, flagTable())
	if err != nil {
		t.Fatal(err)
	}
	if opts.ChartType != chart.ScatterPlot || opts.Height != 300 {
		t.Errorf("config values not applied: %s %v", opts.ChartType, opts.Height)
	}
	if opts.Manager.FacetStrategy != chart.FacetNone {
		t.Errorf("flag should override config, got %s", opts.Manager.FacetStrategy)
	}
}

func TestChartFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		code errors.Code
	}{
		{"bad type", map[string]string{"type": "PieChart"}, errors.ErrCodeInvalidChartType},
		{"bad facet", map[string]string{"facet": "grid"}, errors.ErrCodeInvalidFacetStrategy},
		{"missing config", map[string]string{"config": "/nonexistent/chart.toml"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f chartFlags
			cmd := flagCommand(t, &f, tt.args)
			_, err := f.options(cmd, flagTable())
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
