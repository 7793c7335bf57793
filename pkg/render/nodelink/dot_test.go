package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/blockgraph/pkg/graph"
	"github.com/matzehuels/blockgraph/pkg/project"
)

func sample() *project.Project {
	return &project.Project{
		Title: "shop",
		Blocks: []project.Block{
			{Name: "users", Presets: []string{"+"}, Parts: []project.Part{
				{Name: "fields", Items: []project.PresetedValue{{Value: "id"}, {Value: "email"}}},
			}},
			{Name: "orders"},
		},
		Refs: []project.Ref{
			{From: "users", To: "orders", Label: "places", Start: project.MarkerDiamond, End: project.MarkerTriangle},
			{From: "orders", To: "payments", Presets: []string{"-"}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`label="shop"`,
		`"users" [label="users"`,
		`"users" -> "orders" [arrowhead=normal, arrowtail=diamond, dir=both, label="places"`,
		`"orders" -> "payments" [arrowhead=none, arrowtail=none`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Presets(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	if !strings.Contains(dot, `fillcolor="green", fontcolor="white", color="green"`) {
		t.Errorf("ToDOT() users missing preset colors:\n%s", dot)
	}
	if !strings.Contains(dot, `color="red"];`) {
		t.Errorf("ToDOT() ref missing preset stroke:\n%s", dot)
	}
}

func TestToDOT_Placeholder(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	var line string
	for _, l := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), `"payments" [`) {
			line = l
		}
	}
	if !strings.Contains(line, "dashed") {
		t.Errorf("placeholder node not dashed: %q", line)
	}
}

func TestToDOT_Ranks(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		`{ rank=same; "users"; }`,
		`{ rank=same; "orders"; }`,
		`{ rank=same; "payments"; }`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing rank %q\n%s", want, dot)
		}
	}
}

func TestFmtLabel(t *testing.T) {
	p := sample()
	info := graph.FromProject(p)
	users, _ := info.Node("users")
	orders, _ := info.Node("orders")

	tests := []struct {
		name     string
		node     *graph.Node
		detailed bool
		want     string
	}{
		{"simple", users, false, "users"},
		{"detailed", users, true, "users\n\n[fields]\nid\nemail"},
		{"detailed without parts", orders, true, "orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed an svg without viewBox: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{Detailed: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "users") {
		t.Errorf("RenderSVG output incomplete: %.200s", s)
	}
}
