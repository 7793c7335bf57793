// Package layout assigns blocks to layers and layers to positions.
//
// Layout runs in two steps:
//
//  1. [AssignLayers] partitions the node table of a project into ordered
//     layers (columns). Cycles are allowed; the partition is a breadth-first
//     heuristic, not a topological sort.
//  2. [Build] places every node of every layer on a grid of fixed-width
//     columns, stacking the nodes of one layer top to bottom.
//
// The result is a [Layout]: one rectangle per laid-out node, in layer order.
package layout
