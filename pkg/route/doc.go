// Package route decides where refs leave and enter blocks.
//
// For every ref it picks a side of each endpoint block ([ChooseSides]), a
// curve shape ([ChooseCurve]) and a distinct anchor point on each chosen side
// ([Allocator]). [Plan] runs the three steps over a whole layout and returns
// the edges in drawing order.
//
// # Anchors
//
// Anchors on one side of one block are spread evenly over the side, inset by
// a twelfth of its length from either corner. Outgoing refs fill the side from
// one corner and incoming refs from the other, so a side shared by both kinds
// never places two refs on the same point.
package route
