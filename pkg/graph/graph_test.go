package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/blockgraph/pkg/project"
)

func blocks(names ...string) []project.Block {
	out := make([]project.Block, len(names))
	for i, n := range names {
		out[i] = project.Block{Name: n}
	}
	return out
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		blocks    []project.Block
		refs      []project.Ref
		wantOrder []string
		wantIn    map[string][]string
		wantOut   map[string][]string
		external  []string
	}{
		{
			name:      "chain",
			blocks:    blocks("a", "b", "c"),
			refs:      []project.Ref{{From: "a", To: "b"}, {From: "b", To: "c"}},
			wantOrder: []string{"a", "b", "c"},
			wantIn:    map[string][]string{"b": {"a"}, "c": {"b"}},
			wantOut:   map[string][]string{"a": {"b"}, "b": {"c"}},
		},
		{
			name:      "placeholder target",
			blocks:    blocks("a", "b"),
			refs:      []project.Ref{{From: "a", To: "x"}, {From: "b", To: "a"}},
			wantOrder: []string{"a", "x", "b"},
			wantIn:    map[string][]string{"x": {"a"}, "a": {"b"}},
			wantOut:   map[string][]string{"a": {"x"}, "b": {"a"}},
			external:  []string{"x"},
		},
		{
			name:      "undeclared source",
			blocks:    blocks("b"),
			refs:      []project.Ref{{From: "q", To: "b"}, {From: "q", To: "r"}},
			wantOrder: []string{"b", "q", "r"},
			wantIn:    map[string][]string{"b": {"q"}, "r": {"q"}},
			wantOut:   map[string][]string{"q": {"b", "r"}},
			external:  []string{"q", "r"},
		},
		{
			name:      "parallel refs keep duplicates",
			blocks:    blocks("a", "b"),
			refs:      []project.Ref{{From: "a", To: "b"}, {From: "a", To: "b"}, {From: "a", To: "b"}},
			wantOrder: []string{"a", "b"},
			wantIn:    map[string][]string{"b": {"a", "a", "a"}},
			wantOut:   map[string][]string{"a": {"b", "b", "b"}},
		},
		{
			name:      "isolated block",
			blocks:    blocks("solo"),
			wantOrder: []string{"solo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(tt.blocks, tt.refs)
			if diff := cmp.Diff(tt.wantOrder, info.Names()); diff != "" {
				t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
			}
			for _, n := range info.Nodes() {
				if diff := cmp.Diff(tt.wantIn[n.Name], n.In); diff != "" {
					t.Errorf("%s.In mismatch (-want +got):\n%s", n.Name, diff)
				}
				if diff := cmp.Diff(tt.wantOut[n.Name], n.Out); diff != "" {
					t.Errorf("%s.Out mismatch (-want +got):\n%s", n.Name, diff)
				}
			}
			for _, name := range tt.external {
				n, ok := info.Node(name)
				if !ok || !n.External() {
					t.Errorf("%s should be an external node", name)
				}
			}
		})
	}
}

func TestExtractEveryEndpointHasNode(t *testing.T) {
	refs := []project.Ref{
		{From: "a", To: "b"}, {From: "c", To: "d"}, {From: "d", To: "a"}, {From: "e", To: "e"},
	}
	info := Extract(blocks("a"), refs)
	for _, r := range refs {
		if _, ok := info.Node(r.From); !ok {
			t.Errorf("missing node for source %q", r.From)
		}
		if _, ok := info.Node(r.To); !ok {
			t.Errorf("missing node for target %q", r.To)
		}
	}
}

func TestExtractDuplicateBlockShadows(t *testing.T) {
	bs := []project.Block{
		{Name: "a", Presets: []string{"old"}},
		{Name: "a", Presets: []string{"new"}},
	}
	info := Extract(bs, []project.Ref{{From: "a", To: "b"}})
	n, _ := info.Node("a")
	if n.Presets()[0] != "new" {
		t.Errorf("Presets() = %v, want [new]", n.Presets())
	}
	if diff := cmp.Diff([]string{"b"}, n.Out); diff != "" {
		t.Errorf("Out mismatch (-want +got):\n%s", diff)
	}
	if info.Len() != 2 {
		t.Errorf("Len() = %d, want 2", info.Len())
	}
}
