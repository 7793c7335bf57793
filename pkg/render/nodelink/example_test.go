package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	p := &project.Project{
		Blocks: []project.Block{{Name: "app"}, {Name: "db"}},
		Refs:   []project.Ref{{From: "app", To: "db", End: project.MarkerTriangle}},
	}

	dot := nodelink.ToDOT(p, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "app" -> "db" [arrowhead=normal, arrowtail=none, dir=both, color="#000000"];
}
