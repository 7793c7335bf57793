package diagram_test

import (
	"fmt"

	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

func ExampleCompute() {
	p := &project.Project{
		Blocks: []project.Block{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Refs: []project.Ref{
			{From: "a", To: "b"},
			{From: "a", To: "c"},
			{From: "c", To: "b"},
		},
	}

	d := diagram.Compute(p, diagram.DefaultConfig())
	fmt.Println(d.Layers)
	for _, e := range d.Edges {
		fmt.Println(e.Ref.From, "->", e.Ref.To, e.FromSide, e.ToSide, e.Curve)
	}
	// Output:
	// [[a] [c] [b]]
	// c -> b right top bend
	// a -> b right left arc
	// a -> c right bottom bend
}
