package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/config"
	"github.com/matzehuels/facetgrid/pkg/pipeline"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// chartFlags are the layout flags shared by the layout and render commands.
// Flags override values from the --config file.
type chartFlags struct {
	config    string
	chartType string
	facet     string
	yColumns  []string
	entities  []string
	sharedY   bool
	relative  bool
	width     float64
	height    float64
	pick      bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "chart configuration file (TOML)")
	cmd.Flags().StringVarP(&f.chartType, "type", "t", "", "chart type: LineChart (default), ScatterPlot, StackedArea, StackedBar, DiscreteBar")
	cmd.Flags().StringVar(&f.facet, "facet", "", "facet strategy: none (default), entity, column")
	cmd.Flags().StringSliceVarP(&f.yColumns, "y", "y", nil, "y column slug(s)")
	cmd.Flags().StringSliceVarP(&f.entities, "entity", "e", nil, "entities to select (default: all)")
	cmd.Flags().BoolVar(&f.sharedY, "shared-y", false, "share the y axis range across facets")
	cmd.Flags().BoolVar(&f.relative, "relative", false, "show values relative to their first value")
	cmd.Flags().Float64Var(&f.width, "width", 0, fmt.Sprintf("container width (default %v)", pipeline.DefaultWidth))
	cmd.Flags().Float64Var(&f.height, "height", 0, fmt.Sprintf("container height (default %v)", pipeline.DefaultHeight))
	cmd.Flags().BoolVar(&f.pick, "pick", false, "pick entities interactively")
}

// options builds pipeline options for t from the config file and flags.
func (f *chartFlags) options(cmd *cobra.Command, t *table.Table) (pipeline.Options, error) {
	opts := pipeline.Options{Table: t}

	if f.config != "" {
		file, err := config.Load(f.config)
		if err != nil {
			return opts, err
		}
		m, err := file.Manager(t)
		if err != nil {
			return opts, err
		}
		opts.Manager = m
		opts.ChartType = file.ChartType()
		opts.Width = file.Chart.Width
		opts.Height = file.Chart.Height
	}

	flags := cmd.Flags()
	if flags.Changed("type") {
		name, err := chart.ParseTypeName(f.chartType)
		if err != nil {
			return opts, err
		}
		opts.ChartType = name
	}
	if flags.Changed("facet") {
		strategy, err := chart.ParseFacetStrategy(f.facet)
		if err != nil {
			return opts, err
		}
		opts.Manager.FacetStrategy = strategy
	}
	if flags.Changed("y") {
		opts.Manager.YColumnSlugs = f.yColumns
	}
	if flags.Changed("entity") {
		opts.Manager.Selection = selection.New(f.entities...)
	}
	if flags.Changed("shared-y") {
		rng := chart.AxisRangeIndependent
		if f.sharedY {
			rng = chart.AxisRangeShared
		}
		opts.Manager.YAxisConfig.FacetAxisRange = rng
	}
	if flags.Changed("relative") {
		opts.Manager.IsRelativeMode = chart.Bool(f.relative)
	}
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}

	if f.pick {
		names, err := pickEntities(t.EntityNames(), opts.Manager.SelectedEntityNames())
		if err != nil {
			return opts, err
		}
		opts.Manager.Selection = selection.New(names...)
	}
	return opts, nil
}
