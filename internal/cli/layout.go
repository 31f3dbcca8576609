package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/pipeline"
	"github.com/matzehuels/facetgrid/pkg/sink"
)

// layoutCommand creates the layout command for computing facet layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		quiet   bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [table]",
		Short: "Compute a facet layout from a data table",
		Long: `Compute a facet layout from a data table.

The layout command reads a table (CSV, XLSX or JSON) and splits it into one
chart per entity or per column, placing the panels on a grid and aligning
their axes. The output is a layout.json file (same format as 'render -f json')
that can be rendered to SVG or PNG using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &flags, output, noCache, refresh, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the facet table")
	flags.register(cmd)

	return cmd
}

// runLayout loads the table, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input string, flags *chartFlags, output string, noCache, refresh, quiet bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, err := runner.Load(ctx, pipeline.Options{TablePath: input, Logger: c.Logger})
	if err != nil {
		return fmt.Errorf("load table %s: %w", input, err)
	}

	opts, err := flags.options(cmd, t)
	if err != nil {
		return err
	}
	opts.Refresh = refresh
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	var (
		layout   facet.Layout
		cacheHit bool
	)
	err = spin(ctx, "Computing layout...", "Layout failed", func() (err error) {
		layout, _, cacheHit, err = runner.LayoutWithCacheInfo(ctx, t, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Placed %d facets", len(layout.Series)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Series), string(layout.Strategy), cacheHit)
	if !quiet {
		printNewline()
		printFacetTable(layout)
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// layoutPath derives the default layout file name from the table path.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

