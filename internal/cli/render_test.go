package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/facetgrid/pkg/chart"
	"github.com/matzehuels/facetgrid/pkg/facet"
	"github.com/matzehuels/facetgrid/pkg/geom"
	"github.com/matzehuels/facetgrid/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces and empties", " svg , ,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestRenderFlagsApply(t *testing.T) {
	f := renderFlags{formats: "svg,png", scale: 3, gutters: true}
	var opts pipeline.Options
	if err := f.apply(&opts); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(opts.Formats) != 2 || opts.Scale != 3 || !opts.Gutters || opts.NoTitles {
		t.Errorf("apply produced %+v", opts)
	}

	f.formats = "svg,pdf"
	if err := f.apply(&opts); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/gdp.csv", "data/gdp"},
		{"", "data/gdp.layout.json", "data/gdp"},
		{"out/chart.svg", "gdp.csv", "out/chart"},
		{"out/chart.png", "gdp.csv", "out/chart"},
		{"out/chart", "gdp.csv", "out/chart"},
		{"out/chart.v2", "gdp.csv", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "png": []byte("png")}

	tests := []struct {
		name    string
		formats []string
		output  string
		want    []string
	}{
		{"single format uses output verbatim", []string{"svg"}, "out/my.chart", []string{"out/my.chart"}},
		{"single format derives from input", []string{"png"}, "", []string{"gdp.png"}},
		{"multiple formats share base", []string{"svg", "png"}, "out/chart.svg", []string{"out/chart.svg", "out/chart.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := artifactPaths(artifactWriteParams{artifacts: artifacts, formats: tt.formats, input: "gdp.csv", output: tt.output})
			if err != nil {
				t.Fatal(err)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("artifactPaths = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := artifactPaths(artifactWriteParams{artifacts: artifacts, formats: []string{"json"}}); err == nil {
		t.Error("missing artifact should be an error")
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json"},
		input:     filepath.Join(dir, "gdp.csv"),
		output:    filepath.Join(dir, "nested", "chart"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for ext, want := range map[string]string{"svg": "<svg/>", "json": "{}"} {
		data, err := os.ReadFile(filepath.Join(dir, "nested", "chart."+ext))
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", ext, data, want)
		}
	}
}

func TestLayoutPath(t *testing.T) {
	if got := layoutPath("data/gdp.csv"); got != "data/gdp.layout.json" {
		t.Errorf("layoutPath = %q", got)
	}
}

func TestFacetTable(t *testing.T) {
	l := facet.Layout{
		Strategy:  chart.FacetEntity,
		ChartType: chart.LineChart,
		Series: []facet.PlacedSeries{
			{Name: "France", Bounds: geom.NewBounds(0, 0, 100, 50), Edges: geom.EdgesOf(geom.Top, geom.Left)},
			{Name: "Chile", Bounds: geom.NewBounds(110, 0, 100, 50), Edges: geom.EdgesOf(geom.Top, geom.Right)},
		},
	}
	out := facetTable(l)
	for _, want := range []string{"Facet", "France", "Chile", "(110.0,0.0 100.0x50.0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("facet table missing %q:\n%s", want, out)
		}
	}
}
