package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facetgrid/pkg/pipeline"
)

// renderFlags holds the output flags shared by render and visualize.
type renderFlags struct {
	output   string
	formats  string
	scale    float64
	gutters  bool
	noTitles bool
	noCache  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixel scale for png output")
	cmd.Flags().BoolVar(&f.gutters, "gutters", false, "shade the padding between panels and their content")
	cmd.Flags().BoolVar(&f.noTitles, "no-titles", false, "omit facet titles in svg output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply copies the render flags onto opts and validates the formats.
func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.Scale = f.scale
	opts.Gutters = f.gutters
	opts.NoTitles = f.noTitles
	return pipeline.ValidateFormats(opts.Formats)
}

// renderCommand creates the render command: table straight to output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   chartFlags
		out     renderFlags
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render [table]",
		Short: "Render a data table as a grid of small charts",
		Long: `Render a data table as a grid of small charts.

Runs the full pipeline in one step: load the table, compute the facet layout
and render it to one or more formats. Use 'layout' and 'visualize' to split
the two stages.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &flags, &out, refresh)
		},
	}

	flags.register(cmd)
	out.register(cmd)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")

	return cmd
}

// runRender executes the complete pipeline and writes the artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, flags *chartFlags, out *renderFlags, refresh bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(out.noCache)
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
	if err := out.apply(&opts); err != nil {
		return err
	}
	opts.Refresh = refresh
	opts.Logger = c.Logger

	var result *pipeline.Result
	err = spin(ctx, "Rendering facets...", "Render failed", func() (err error) {
		result, err = runner.Execute(ctx, opts)
		return err
	})
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    out.output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	printStats(result.Stats.FacetCount, string(result.Layout.Strategy), result.CacheInfo.LayoutHit)
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes each requested format to disk and reports the files.
// A single format goes to output verbatim; several formats share a base path.
func writeArtifacts(p artifactWriteParams) error {
	paths, err := artifactPaths(p)
	if err != nil {
		return err
	}
	for i, format := range p.formats {
		if err := writeFile(paths[i], p.artifacts[format]); err != nil {
			return err
		}
	}

	if p.cacheHit {
		printSuccess("Rendered (cached)")
	} else {
		printSuccess("Rendered")
	}
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// artifactPaths resolves the output file for every format in p.
func artifactPaths(p artifactWriteParams) ([]string, error) {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		if _, ok := p.artifacts[format]; !ok {
			return nil, fmt.Errorf("no %s output was rendered", format)
		}
		if len(p.formats) == 1 && p.output != "" {
			paths = append(paths, p.output)
			continue
		}
		paths = append(paths, basePath(p.output, p.input)+"."+format)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (and a trailing
// ".layout" so layout files render next to their tables).
// If output has a format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
