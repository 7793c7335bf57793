// Package pkg provides the libraries behind blockgraph, a renderer for block
// diagrams.
//
// # Overview
//
// A project is a list of named blocks, each made of parts holding text
// items, plus directed refs between block names. Blockgraph places blocks in
// layers by following refs from the first declared block, stacks each layer
// in a column, routes every ref as a curve between anchors on the block
// sides and draws the result as SVG.
//
// # Architecture
//
// The data flow:
//
//	text / JSON / TOML
//	       ↓
//	  [io]        decode into a [project.Project]
//	       ↓
//	  [graph]     node table: in/out names, placeholders for undeclared targets
//	       ↓
//	  [layout]    layer assignment and block rectangles
//	       ↓
//	  [route]     sides, anchors and curve kinds for every ref
//	       ↓
//	  [render/diagram] → [canvas]   SVG document
//
// [style] resolves preset names to concrete fill, stroke and text
// attributes at draw time; [geom] holds the shared point and rectangle
// types.
//
// # Quick Start
//
//	p, err := io.Import("shop.txt")
//	if err != nil {
//	    return err
//	}
//	svg := diagram.Render(p, diagram.DefaultConfig())
//
// # Other Packages
//
// [pipeline] runs layout, rendering and PNG/PDF conversion with caching and
// is shared by the CLI and the HTTP server.
//
// [render/nodelink] draws the same project as a Graphviz node-link diagram
// and exports DOT; [render] converts SVG to PNG and PDF.
//
// [cache] stores rendered artifacts on disk or in Redis. [store] keeps
// renders served over HTTP in a directory or in MongoDB.
//
// [config] loads settings from TOML, [errors] carries machine-readable error
// codes, [observability] exposes hooks for metrics and [buildinfo] holds
// the version stamped at build time.
//
// [style]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/style
// [geom]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/geom
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/pipeline
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/buildinfo
//
// [io]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/io
// [project.Project]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/project#Project
// [graph]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/route
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/render/diagram
// [canvas]: https://pkg.go.dev/github.com/matzehuels/blockgraph/pkg/canvas
package pkg
