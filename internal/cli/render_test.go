package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

const shopText = `
<db> { fill: #ddeeff; }
[api | {routes} GET /orders; POST /orders]
[<db> orders]
[api] {reads} -> [orders]
`

func writeProject(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot ", []string{"svg", "dot"}},
		{"empty items skipped", "svg,,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join("in", "shop.txt")

	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			"next to input",
			"", []string{"svg", "png"},
			map[string]string{"svg": filepath.Join("in", "shop.svg"), "png": filepath.Join("in", "shop.png")},
		},
		{
			"existing directory",
			dir, []string{"svg"},
			map[string]string{"svg": filepath.Join(dir, "shop.svg")},
		},
		{
			"trailing slash",
			"out/", []string{"dot"},
			map[string]string{"dot": filepath.Join("out", "shop.dot")},
		},
		{
			"single file",
			"diagram.svg", []string{"svg"},
			map[string]string{"svg": "diagram.svg"},
		},
		{
			"known extension stripped",
			"diagram.svg", []string{"svg", "pdf"},
			map[string]string{"svg": "diagram.svg", "pdf": "diagram.pdf"},
		},
		{
			"unknown extension kept",
			"diagram.v2", []string{"svg", "json"},
			map[string]string{"svg": "diagram.v2.svg", "json": "diagram.v2.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, input, tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeometryFlagsOverrideConfig(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags diagram.Config
	addGeometryFlags(fs, &flags, diagram.DefaultConfig())
	if err := fs.Parse([]string{"--block-width", "300"}); err != nil {
		t.Fatal(err)
	}

	cfg := diagram.DefaultConfig()
	cfg.FontSize = 11 // from a config file
	got := geometry(fs, flags, cfg)

	if got.BlockWidth != 300 {
		t.Errorf("BlockWidth = %v, want flag value 300", got.BlockWidth)
	}
	if got.FontSize != 11 {
		t.Errorf("FontSize = %v, want config value 11", got.FontSize)
	}
}

func TestRunRender(t *testing.T) {
	input := writeProject(t, "shop.txt", shopText)
	outDir := t.TempDir()

	c := New(io.Discard, LogInfo)
	err := execute(t, c, "render", input, "--no-cache", "-f", "svg,json,dot", "-o", outDir+string(filepath.Separator))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]string{
		"shop.svg":  "<svg",
		"shop.json": `"orders"`,
		"shop.dot":  `"api" -> "orders"`,
	}
	for name, substr := range want {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), substr) {
			t.Errorf("%s does not contain %q", name, substr)
		}
	}
}

func TestRunRenderUsesCache(t *testing.T) {
	input := writeProject(t, "shop.txt", shopText)
	cacheDir := t.TempDir()

	for i := 0; i < 2; i++ {
		c := New(io.Discard, LogInfo)
		c.Config.Cache.Dir = cacheDir
		out := filepath.Join(t.TempDir(), "shop.svg")
		if err := execute(t, c, "render", input, "-o", out); err != nil {
			t.Fatalf("render #%d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("render should populate the cache directory")
	}
}

func TestRunRenderErrors(t *testing.T) {
	input := writeProject(t, "shop.txt", shopText)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "none.txt")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad viz", []string{"render", input, "--viz", "tower"}, errors.ErrCodeInvalidFormat},
		{"bad geometry", []string{"render", input, "--block-width", "0"}, errors.ErrCodeInvalidConfig},
		{"stdout with two formats", []string{"render", input, "-f", "svg,dot", "-o", "-"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, New(io.Discard, LogInfo), append(tt.args, "--no-cache")...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}
