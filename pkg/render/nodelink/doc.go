// Package nodelink renders a project as a Graphviz node-link diagram.
//
// # Overview
//
// The block diagram in [diagram] places blocks with its own layering and
// routing. This package offers a second view of the same graph laid out by
// Graphviz's dot engine, which is useful for large or dense projects where
// curved refs between columns become hard to follow.
//
// # Usage
//
// Convert a project to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// Nodes are laid out left to right and ranked by the same layers the block
// diagram uses, so both views read in the same order. Preset fills, text
// colors and borders carry over; placeholders (names only referenced by
// refs) are dashed. Ref markers map to Graphviz arrow shapes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
//
// [diagram]: github.com/matzehuels/blockgraph/pkg/render/diagram
package nodelink
