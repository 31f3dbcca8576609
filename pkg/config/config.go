// Package config reads chart configuration files.
//
// A configuration file is TOML with a [chart] table and optional [x_axis] and
// [y_axis] tables:
//
//	[chart]
//	type = "LineChart"
//	facet = "entity"
//	y_columns = ["gdp"]
//	entities = ["France", "Chile"]
//	width = 800
//	height = 600
//
//	[y_axis]
//	facet_range = "shared"
//	min = 0
//
// Keys that are absent stay unset, so they inherit from the engine's defaults
// rather than overriding them. Unknown keys are rejected.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// File is a parsed configuration file.
type File struct {
	Chart ChartSection `toml:"chart"`
	XAxis AxisSection  `toml:"x_axis"`
	YAxis AxisSection  `toml:"y_axis"`
}

// ChartSection holds chart-wide settings.
type ChartSection struct {
	Type     string   `toml:"type"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Facet    string   `toml:"facet"`
	Series   string   `toml:"series"`
	Y        string   `toml:"y"`
	YColumns []string `toml:"y_columns"`
	X        string   `toml:"x"`
	Color    string   `toml:"color"`
	Size     string   `toml:"size"`
	Entities []string `toml:"entities"`
	Relative *bool    `toml:"relative"`
	FontSize float64  `toml:"font_size"`
}

// AxisSection holds the settings of one axis.
type AxisSection struct {
	Min           *float64 `toml:"min"`
	Max           *float64 `toml:"max"`
	MinSize       *float64 `toml:"min_size"`
	Hide          *bool    `toml:"hide"`
	Nice          *bool    `toml:"nice"`
	MaxTicks      *int     `toml:"max_ticks"`
	CompactLabels *bool    `toml:"compact_labels"`
	Scale         string   `toml:"scale"`
	FacetRange    string   `toml:"facet_range"`
	Label         string   `toml:"label"`
}

// Load reads a configuration file from disk.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a configuration from r and validates its enumerations.
func Parse(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the enumerated settings.
func (f *File) Validate() error {
	if f.Chart.Type != "" {
		if _, err := chart.ParseTypeName(f.Chart.Type); err != nil {
			return err
		}
	}
	if _, err := chart.ParseFacetStrategy(f.Chart.Facet); err != nil {
		return err
	}
	switch chart.SeriesStrategy(f.Chart.Series) {
	case "", chart.SeriesEntity, chart.SeriesColumn:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid series strategy: %q (must be one of: entity, column)", f.Chart.Series)
	}
	if f.Chart.Width < 0 || f.Chart.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must not be negative")
	}
	for _, slug := range f.columnSlugs() {
		if err := errors.ValidateSlug(slug); err != nil {
			return err
		}
	}
	for _, name := range f.Chart.Entities {
		if err := errors.ValidateEntityName(name); err != nil {
			return err
		}
	}
	for _, a := range []struct {
		name string
		s    AxisSection
	}{{"x_axis", f.XAxis}, {"y_axis", f.YAxis}} {
		if _, err := a.s.config(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", a.name)
		}
	}
	return nil
}

// ChartType returns the configured chart type, or the empty name when unset.
func (f *File) ChartType() chart.TypeName {
	if f.Chart.Type == "" {
		return ""
	}
	name, _ := chart.ParseTypeName(f.Chart.Type)
	return name
}

// Manager builds the chart manager for t. Entities listed in the file form
// the selection; when none are listed the selection stays unset.
func (f *File) Manager(t *table.Table) (chart.Manager, error) {
	if err := f.Validate(); err != nil {
		return chart.Manager{}, err
	}
	for _, slug := range f.columnSlugs() {
		if !t.Has(slug) {
			return chart.Manager{}, errors.New(errors.ErrCodeInvalidConfig, "unknown column: %q", slug)
		}
	}

	strategy, _ := chart.ParseFacetStrategy(f.Chart.Facet)
	x, _ := f.XAxis.config()
	y, _ := f.YAxis.config()
	m := chart.Manager{
		Table:           t,
		BaseFontSize:    f.Chart.FontSize,
		YColumnSlug:     f.Chart.Y,
		YColumnSlugs:    f.Chart.YColumns,
		XColumnSlug:     f.Chart.X,
		ColorColumnSlug: f.Chart.Color,
		SizeColumnSlug:  f.Chart.Size,
		IsRelativeMode:  f.Chart.Relative,
		SeriesStrategy:  chart.SeriesStrategy(f.Chart.Series),
		FacetStrategy:   strategy,
		XAxisConfig:     x,
		YAxisConfig:     y,
	}
	if len(f.Chart.Entities) > 0 {
		m.Selection = selection.New(f.Chart.Entities...)
	}
	return m, nil
}

func (f *File) columnSlugs() []string {
	var slugs []string
	for _, s := range append([]string{f.Chart.Y, f.Chart.X, f.Chart.Color, f.Chart.Size}, f.Chart.YColumns...) {
		if s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

func (a AxisSection) config() (chart.AxisConfig, error) {
	scale, err := chart.ParseScaleType(a.Scale)
	if err != nil {
		return chart.AxisConfig{}, err
	}
	facetRange, err := chart.ParseFacetAxisRange(a.FacetRange)
	if err != nil {
		return chart.AxisConfig{}, err
	}
	cfg := chart.AxisConfig{
		Min:            a.Min,
		Max:            a.Max,
		MinSize:        a.MinSize,
		HideAxis:       a.Hide,
		Nice:           a.Nice,
		MaxTicks:       a.MaxTicks,
		CompactLabels:  a.CompactLabels,
		ScaleType:      scale,
		FacetAxisRange: facetRange,
		Label:          a.Label,
	}
	if err := cfg.Validate(); err != nil {
		return chart.AxisConfig{}, err
	}
	return cfg, nil
}
