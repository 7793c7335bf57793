package layout

import "github.com/matzehuels/blockgraph/pkg/graph"

// AssignLayers partitions the nodes of info into ordered layers.
//
// # Algorithm
//
//  1. Nodes are grouped by the length of their In list; the group with the
//     smallest length (in creation order) is the first layer and the initial
//     frontier.
//  2. The candidates of a frontier are the distinct Out targets of its nodes,
//     in first-seen order, that have not been placed yet.
//  3. Candidates whose predecessors are all placed are "ready". The next layer
//     is the ready candidates, or every candidate when none is ready (this is
//     how cycles are broken).
//  4. The walk stops when a frontier has no candidates.
//
// Nodes the walk never reaches (for example the members of a cycle that is
// only entered from an unplaced node) are appended as one final layer in
// creation order, so every node of info appears in exactly one layer.
// Use [Unreached] to find out which nodes were placed that way.
//
// AssignLayers returns nil for an empty table.
func AssignLayers(info *graph.Info) [][]string {
	layers := walk(info)
	if rest := Unreached(info); len(rest) > 0 {
		layers = append(layers, rest)
	}
	return layers
}

// Unreached returns the nodes of info that the breadth-first walk does not
// place, in creation order. It is empty whenever every node is reachable
// from the first layer.
func Unreached(info *graph.Info) []string {
	placed := make(map[string]bool, info.Len())
	for _, l := range walk(info) {
		for _, name := range l {
			placed[name] = true
		}
	}
	var rest []string
	for _, name := range info.Names() {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	return rest
}

func walk(info *graph.Info) [][]string {
	nodes := info.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	minIn := len(nodes[0].In)
	for _, n := range nodes[1:] {
		minIn = min(minIn, len(n.In))
	}
	var frontier []string
	for _, n := range nodes {
		if len(n.In) == minIn {
			frontier = append(frontier, n.Name)
		}
	}

	visited := make(map[string]bool, len(nodes))
	for _, name := range frontier {
		visited[name] = true
	}
	layers := [][]string{frontier}

	for {
		candidates := nextCandidates(info, frontier, visited)
		if len(candidates) == 0 {
			break
		}

		var ready []string
		for _, name := range candidates {
			if allVisited(info, name, visited) {
				ready = append(ready, name)
			}
		}
		next := candidates
		if len(ready) > 0 {
			next = ready
		}

		for _, name := range next {
			visited[name] = true
		}
		layers = append(layers, next)
		frontier = next
	}
	return layers
}

func nextCandidates(info *graph.Info, frontier []string, visited map[string]bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range frontier {
		n, _ := info.Node(name)
		for _, to := range n.Out {
			if visited[to] || seen[to] {
				continue
			}
			seen[to] = true
			out = append(out, to)
		}
	}
	return out
}

func allVisited(info *graph.Info, name string, visited map[string]bool) bool {
	n, _ := info.Node(name)
	for _, from := range n.In {
		if !visited[from] {
			return false
		}
	}
	return true
}
