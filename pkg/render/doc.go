// Package render converts rendered diagrams between output formats.
//
// Diagrams are always drawn as SVG, either by [diagram] (the block diagram)
// or by [nodelink] (a Graphviz view of the same graph). [ToPDF] and [ToPNG]
// turn that SVG into other formats using the external rsvg-convert tool
// from librsvg:
//
//	svg := diagram.Render(p, diagram.DefaultConfig())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When rsvg-convert is not installed the conversion functions fail with
// [errors.ErrCodeConverterMissing].
//
// [diagram]: github.com/matzehuels/blockgraph/pkg/render/diagram
// [nodelink]: github.com/matzehuels/blockgraph/pkg/render/nodelink
// [errors.ErrCodeConverterMissing]: github.com/matzehuels/blockgraph/pkg/errors.ErrCodeConverterMissing
package render
