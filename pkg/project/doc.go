// Package project defines the input model of a diagram: named style presets,
// blocks with their parts and items, and directed references between blocks.
//
// A [Project] is plain data. It carries no derived state; the graph view,
// layering and layout are computed from it on every render by the packages
// under pkg/graph, pkg/layout and pkg/render.
//
// # Presets
//
// A [Preset] is a small set of style attributes (fill, border, color) plus
// open-ended extra attributes. Presets are referenced by name from blocks,
// items and refs. The order in which presets are declared is preserved by
// every encoding this package supports, because later presets override
// earlier ones when several are applied to the same element.
//
// # Markers
//
// A [Ref] may carry a [Marker] glyph at either end. Markers accept both their
// long names ("triangle", "diamond-empty", ...) and short codes (">", "+", ...),
// see [ParseMarker].
package project
