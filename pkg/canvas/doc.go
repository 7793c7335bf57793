// Package canvas is an append-only vector drawing surface that emits SVG.
//
// Primitives (rectangles, circles, lines, curves, text, groups) are recorded
// in call order and written out by [Canvas.Assemble], which sizes the
// document to everything drawn so far plus the configured padding on every
// side. Coordinates passed to the canvas are unpadded; the padding offset is
// applied on output.
//
// Text is never measured against a real font. [MeasureText] uses a fixed
// per-character advance table for a monospace-like face and a fallback
// average for anything outside ASCII.
//
// Emission goes through github.com/ajstarks/svgo. Rectangles and text are
// snapped to whole units (svgo takes integer coordinates); path data keeps
// fractional coordinates so curves and separators stay exact.
package canvas
