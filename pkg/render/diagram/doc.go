// Package diagram renders a project as a block diagram.
//
// [Render] is the whole pipeline in one call: it derives the graph view,
// assigns layers, lays blocks out, routes refs and draws everything onto a
// canvas. [Compute] stops before drawing and returns the intermediate
// [Diagram], which [Diagram.SVG] and [RenderJSON] turn into documents.
//
// Rendering is a pure function of the project and the [Config]: the same
// input always produces byte-identical output.
//
// # Drawing order
//
// Refs are drawn first, in the order [route.Plan] returns them, and blocks
// second, layer by layer, so block backgrounds cover the ends of the curves.
//
// # Blocks
//
// A block is a header row followed, for each part, by an optional
// sub-heading row and one row per item. Its height is a pure function of its
// parts, see [BlockHeight]. Each block is wrapped in a group whose classes
// identify the block and its neighbors:
//
//	block__cur_<h>   the block itself
//	block__in_<h>    one per block with a ref into this one
//	block__out_<h>   one per block this one refers to
//
// where <h> is [Hash] of the block name. Ref paths carry block__in_ of their
// source and block__out_ of their target. [WithHighlight] uses these classes
// to fade everything unrelated to a clicked block.
package diagram
