package chart

import (
	"slices"
	"testing"

	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/selection"
)

func TestAxisConfigMerge(t *testing.T) {
	base := AxisConfig{Min: Float(0), Nice: Bool(true), MaxTicks: Int(6), Label: "GDP"}
	over := AxisConfig{Nice: Bool(false), ScaleType: ScaleLog}

	got := base.Merge(over)
	if got.Min == nil || *got.Min != 0 {
		t.Errorf("Min should fall through, got %v", got.Min)
	}
	if got.IsNice() {
		t.Error("explicit false should override inherited true")
	}
	if !got.IsLog() {
		t.Errorf("ScaleType = %q, want log", got.ScaleType)
	}
	if got.TickLimit(10) != 6 || got.Label != "GDP" {
		t.Errorf("unset fields should fall through, got %+v", got)
	}
	if base.IsLog() || !base.IsNice() {
		t.Error("Merge must not modify the receiver")
	}
}

func TestAxisConfigDefaults(t *testing.T) {
	var c AxisConfig
	if !c.IsNice() {
		t.Error("nice should default to true")
	}
	if c.IsHidden() || c.IsCompact() || c.IsLog() || c.IsShared() {
		t.Errorf("zero config should have every flag off, got %+v", c)
	}
	if c.TickLimit(7) != 7 {
		t.Errorf("TickLimit default = %d, want 7", c.TickLimit(7))
	}
}

func TestAxisConfigTickLimitClamp(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{-5, 1},
		{0, 1},
		{4, 4},
		{MaxTickLimit, MaxTickLimit},
		{1 << 62, MaxTickLimit},
	}
	for _, tt := range tests {
		if got := (AxisConfig{MaxTicks: Int(tt.max)}).TickLimit(6); got != tt.want {
			t.Errorf("TickLimit with MaxTicks %d = %d, want %d", tt.max, got, tt.want)
		}
	}
}

func TestAxisConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AxisConfig
		wantErr bool
	}{
		{"zero", AxisConfig{}, false},
		{"full", AxisConfig{MaxTicks: Int(5), ScaleType: ScaleLog, FacetAxisRange: AxisRangeShared}, false},
		{"too many ticks", AxisConfig{MaxTicks: Int(MaxTickLimit + 1)}, true},
		{"no ticks", AxisConfig{MaxTicks: Int(0)}, true},
		{"scale", AxisConfig{ScaleType: "sqrt"}, true},
		{"range", AxisConfig{FacetAxisRange: "global"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error %v should carry %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestManagerMerge(t *testing.T) {
	base := Manager{
		BaseFontSize:  16,
		YColumnSlug:   "gdp",
		FacetStrategy: FacetEntity,
		HideLegend:    Bool(false),
		YAxisConfig:   AxisConfig{FacetAxisRange: AxisRangeShared, Label: "GDP"},
	}
	over := Manager{
		BaseFontSize: 12,
		HideLegend:   Bool(true),
		Selection:    selection.New("France"),
		YAxisConfig:  AxisConfig{Nice: Bool(false)},
	}

	got := base.Merge(over)
	if got.BaseFontSize != 12 {
		t.Errorf("BaseFontSize = %v, want 12", got.BaseFontSize)
	}
	if got.HideLegend == nil || !*got.HideLegend {
		t.Error("HideLegend should be overridden")
	}
	if got.YColumnSlug != "gdp" || got.FacetStrategy != FacetEntity {
		t.Errorf("unset fields should fall through, got %+v", got)
	}
	if !got.YAxisConfig.IsShared() || got.YAxisConfig.Label != "GDP" || got.YAxisConfig.IsNice() {
		t.Errorf("axis config should merge field by field, got %+v", got.YAxisConfig)
	}
	if got.Selection.Len() != 1 {
		t.Errorf("Selection len = %d, want 1", got.Selection.Len())
	}
}

func TestManagerFontSize(t *testing.T) {
	if got := (Manager{}).FontSize(); got != DefaultFontSize {
		t.Errorf("FontSize() = %v, want %v", got, DefaultFontSize)
	}
	if got := (Manager{BaseFontSize: 11}).FontSize(); got != 11 {
		t.Errorf("FontSize() = %v, want 11", got)
	}
}

func TestAutoDetectYColumnSlugs(t *testing.T) {
	tests := []struct {
		name string
		m    Manager
		want []string
	}{
		{"slugs win", Manager{Table: testTable(), YColumnSlugs: []string{"pop"}, YColumnSlug: "gdp"}, []string{"pop"}},
		{"single slug", Manager{Table: testTable(), YColumnSlug: "gdp"}, []string{"gdp"}},
		{"all numeric", Manager{Table: testTable()}, []string{"gdp", "pop"}},
		{"skips x column", Manager{Table: testTable(), XColumnSlug: "pop"}, []string{"gdp"}},
		{"no table", Manager{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoDetectYColumnSlugs(tt.m); !slices.Equal(got, tt.want) {
				t.Errorf("AutoDetectYColumnSlugs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFacetStrategy(t *testing.T) {
	for in, want := range map[string]FacetStrategy{"": FacetNone, "none": FacetNone, "entity": FacetEntity, "column": FacetColumn} {
		got, err := ParseFacetStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseFacetStrategy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFacetStrategy("metric"); err == nil {
		t.Error("expected error for unknown strategy")
	}
	if _, err := ParseScaleType("sqrt"); err == nil {
		t.Error("expected error for unknown scale type")
	}
	if _, err := ParseFacetAxisRange("global"); err == nil {
		t.Error("expected error for unknown axis range")
	}
}
