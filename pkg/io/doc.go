// Package io reads and writes blockgraph projects.
//
// # Formats
//
// Three encodings describe the same [project.Project]:
//
//   - JSON: the canonical form; preset key order is preserved.
//   - TOML: the same fields as tables; preset order follows the document.
//   - Text: a compact notation meant to be typed by hand.
//
// # Text Notation
//
// Presets, blocks and refs are recognised line by line; anything else is
// ignored:
//
//	<+> { fill: green; color: white; }
//	[<+> users | {fields} id; <-> name | {methods} save]
//	[users] <+> {owns} *-> [orders]
//
// A preset line is a name in angle brackets followed by CSS-like
// declarations. Repeating a preset merges into the earlier one, later keys
// winning. A block is a bracketed name with optional presets, followed by
// parts separated by "|"; each part has an optional {heading} and
// ";"-separated items, each with optional presets. A ref names two blocks in
// brackets around an arrow "start-end", where start and end are marker
// codes such as "<", "*", "o" or "|>". An optional <presets> group and
// {label} sit between the source and the arrow.
//
// # Import
//
// Use [Import] to read a file by extension (.json, .toml, anything else is
// text), or the Read* functions to decode from any io.Reader:
//
//	p, err := io.Import("schema.bg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding errors carry [errors.ErrCodeInvalidProject]; missing files carry
// [errors.ErrCodeFileNotFound].
//
// # Export
//
// [WriteJSON] and [WriteText] encode a project; [ExportJSON] writes it to a
// file. A project exported as JSON re-imports identically.
//
// [errors.ErrCodeInvalidProject]: github.com/matzehuels/blockgraph/pkg/errors.ErrCodeInvalidProject
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/blockgraph/pkg/errors.ErrCodeFileNotFound
package io
