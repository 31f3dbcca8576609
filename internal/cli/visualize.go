package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/pipeline"
	"github.com/matzehuels/facetgrid/pkg/sink"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var out renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a previously computed layout",
		Long: `Render a previously computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG or JSON. The layout holds every panel position, so
this step is purely about drawing.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a table to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(cmd, args[0], &out)
		},
	}
	out.register(cmd)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(cmd *cobra.Command, input string, out *renderFlags) error {
	ctx := cmd.Context()

	var opts pipeline.Options
	if err := out.apply(&opts); err != nil {
		return err
	}
	opts.Logger = c.Logger

	layout, err := readLayoutFile(input)
	if err != nil {
		return err
	}
	opts.ChartType = layout.ChartType

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var (
		artifacts map[string][]byte
		cacheHit  bool
	)
	err = spin(ctx, fmt.Sprintf("Rendering %d facets...", len(layout.Series)), "Visualization failed", func() (err error) {
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    out.output,
		cacheHit:  cacheHit,
	})
}

// readLayoutFile decodes a layout written by the layout command.
func readLayoutFile(path string) (facet.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return facet.Layout{}, fmt.Errorf("open layout %s: %w", path, err)
	}
	defer f.Close()

	layout, err := sink.ReadJSON(f)
	if err != nil {
		return facet.Layout{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	return layout, nil
}
