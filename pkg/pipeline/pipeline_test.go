package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facetgrid/pkg/cache"
	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/observability"
	"github.com/matzehuels/facetgrid/pkg/selection"
	"github.com/matzehuels/facetgrid/pkg/table"
)

func testTable() *table.Table {
	var rows []table.Row
	for i, entity := range []string{"France", "Chile", "Kenya"} {
		for year := 2000; year <= 2020; year += 10 {
			rows = append(rows, table.Row{
				Entity: entity,
				Time:   year,
				Values: map[string]float64{"gdp": float64((i + 1) * (year - 1990))},
			})
		}
	}
	return table.New([]table.Column{{Slug: "gdp", Name: "GDP"}}, rows)
}

func testOptions() Options {
	return Options{
		Table:   testTable(),
		Manager: chart.Manager{FacetStrategy: chart.FacetEntity},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format should fail with INVALID_FORMAT, got %v", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v", opts.Width, opts.Height)
	}
	if opts.ChartType != chart.LineChart {
		t.Errorf("ChartType = %s", opts.ChartType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v", opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Width = 100
	if err := opts.ValidateAndSetDefaults(); err != nil || opts.Width != 100 {
		t.Error("second call should be a no-op")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"no table", func(o *Options) { o.Table = nil }, errors.ErrCodeInvalidInput},
		{"chart type", func(o *Options) { o.ChartType = "PieChart" }, errors.ErrCodeInvalidChartType},
		{"strategy", func(o *Options) { o.Manager.FacetStrategy = "region" }, errors.ErrCodeInvalidFacetStrategy},
		{"negative width", func(o *Options) { o.Width = -1 }, errors.ErrCodeInvalidInput},
		{"huge width", func(o *Options) { o.Width = MaxDimension + 1 }, errors.ErrCodeInvalidInput},
		{"huge scale", func(o *Options) { o.Scale = MaxScale * 2 }, errors.ErrCodeInvalidInput},
		{"png canvas", func(o *Options) {
			o.Width, o.Height, o.Formats = MaxDimension, MaxDimension, []string{FormatPNG}
		}, errors.ErrCodeInvalidInput},
		{"max ticks", func(o *Options) { o.Manager.YAxisConfig.MaxTicks = chart.Int(1 << 62) }, errors.ErrCodeInvalidConfig},
		{"scale type", func(o *Options) { o.Manager.XAxisConfig.ScaleType = "cubic" }, errors.ErrCodeInvalidConfig},
		{"axis range", func(o *Options) { o.Manager.YAxisConfig.FacetAxisRange = "global" }, errors.ErrCodeInvalidConfig},
		{"y slug", func(o *Options) { o.Manager.YColumnSlugs = []string{"gdp per capita"} }, errors.ErrCodeInvalidSlug},
		{"entity name", func(o *Options) { o.Manager.Selection = selection.New("\x00") }, errors.ErrCodeInvalidInput},
		{"format", func(o *Options) { o.Formats = []string{"pdf"} }, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.modify(&opts)
			err := opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := testOptions()
	opts.Scale = 3
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || !k.Titles {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Scale != 0 || k.Titles {
		t.Errorf("json key opts = %+v", k)
	}
}

func TestComputeLayoutSelectsAllEntities(t *testing.T) {
	opts := testOptions()
	opts.SetLayoutDefaults()
	l := ComputeLayout(opts.Table, opts)

	if len(l.Series) != 3 {
		t.Fatalf("got %d facets, want 3", len(l.Series))
	}
	for i, want := range []string{"France", "Chile", "Kenya"} {
		if l.Series[i].Name != want {
			t.Errorf("facet %d = %s, want %s", i, l.Series[i].Name, want)
		}
	}
}

func TestInputHash(t *testing.T) {
	opts := testOptions()
	h1, err := InputHash(opts.Table, opts)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := InputHash(testTable(), opts)
	if h1 != h2 {
		t.Error("equal inputs should hash equally")
	}

	opts.Manager.FacetStrategy = chart.FacetColumn
	if h3, _ := InputHash(opts.Table, opts); h3 == h1 {
		t.Error("manager changes should change the hash")
	}
}

func TestRender(t *testing.T) {
	opts := testOptions()
	opts.Formats = []string{FormatSVG, FormatPNG, FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(ComputeLayout(opts.Table, opts), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact should start with <svg")
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact should carry the PNG signature")
	}
	if !bytes.Contains(artifacts[FormatJSON], []byte(`"France"`)) {
		t.Error("json artifact should contain facet names")
	}

	if _, err := Render(ComputeLayout(opts.Table, opts), Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp.csv")
	csv := "entity,year,gdp\nFrance,2000,10\nChile,2000,5\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(context.Background(), Options{TablePath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Errorf("rows = %d", tbl.NumRows())
	}

	_, err = Load(context.Background(), Options{TablePath: filepath.Join(t.TempDir(), "missing.csv")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.csv")
	_ = os.WriteFile(empty, []byte("entity,year,gdp\n"), 0644)
	if _, err := Load(context.Background(), Options{TablePath: empty}); err == nil {
		t.Error("empty table should fail")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	opts := testOptions()
	opts.Formats = []string{FormatSVG, FormatJSON}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.FacetCount != 3 || first.Stats.RowCount != 9 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if first.InputHash == "" {
		t.Error("InputHash should be set")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if len(second.Layout.Series) != 3 || second.Layout.Series[2].Name != "Kenya" {
		t.Error("cached layout lost facets")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the layout cache")
	}
}

type recordingHooks struct {
	observability.Noop
	layouts []observability.LayoutEvent
	misses  []observability.CacheKind
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, ev observability.LayoutEvent, _ time.Duration) {
	h.layouts = append(h.layouts, ev)
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, kind observability.CacheKind) {
	h.misses = append(h.misses, kind)
}

func TestRunnerEmitsHooks(t *testing.T) {
	defer observability.Reset()
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	observability.SetCacheHooks(rec)

	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(context.Background(), testOptions()); err != nil {
		t.Fatal(err)
	}

	if len(rec.layouts) != 1 {
		t.Fatalf("layout events = %d, want 1", len(rec.layouts))
	}
	ev := rec.layouts[0]
	if ev.Entities != 3 || ev.Facets != 3 || ev.Strategy != string(chart.FacetEntity) || ev.ChartType != string(DefaultChartType) {
		t.Errorf("layout event = %+v", ev)
	}
	want := []observability.CacheKind{observability.CacheLayout, observability.CacheArtifact}
	if len(rec.misses) != 2 || rec.misses[0] != want[0] || rec.misses[1] != want[1] {
		t.Errorf("cache misses = %v, want %v", rec.misses, want)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), Options{})
	if err == nil || !strings.Contains(err.Error(), "invalid options") {
		t.Errorf("err = %v", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner should fill in defaults")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
