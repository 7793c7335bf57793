// Package graph derives the directed graph view of a project.
//
// [Extract] turns the declared blocks and refs into an [Info]: one [Node] per
// name that appears anywhere, with its incoming and outgoing neighbor lists.
// Names that are referenced but never declared become placeholder nodes
// (see [Node.External]); they are laid out and drawn like any other block,
// with an empty body.
//
// # Ordering
//
// Info iterates nodes in creation order: declared blocks in declaration order,
// each immediately followed by any placeholder its refs create, then the
// endpoints of refs whose source was never declared. Layering, layout and
// drawing all depend on this order for deterministic output.
//
// Neighbor lists keep duplicates: two parallel refs a→b put "b" twice in a's
// Out list and "a" twice in b's In list.
package graph
