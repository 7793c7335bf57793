package graph

import "github.com/matzehuels/blockgraph/pkg/project"

// Node is the derived view of one name in the graph.
type Node struct {
	Name  string
	Block *project.Block // nil for placeholders
	In    []string
	Out   []string
}

// External reports whether the node was referenced but never declared.
func (n *Node) External() bool { return n.Block == nil }

// Parts returns the node's parts, or nil for placeholders.
func (n *Node) Parts() []project.Part {
	if n.Block == nil {
		return nil
	}
	return n.Block.Parts
}

// Presets returns the header presets of the node.
func (n *Node) Presets() []string {
	if n.Block == nil {
		return nil
	}
	return n.Block.Presets
}

// Info is the node table of a project, ordered by creation.
type Info struct {
	order []string
	nodes map[string]*Node
	refs  []project.Ref
}

// Extract builds the node table from blocks and refs.
//
// Every ref endpoint gets a node. A later block with an already used name
// replaces the earlier declaration.
func Extract(blocks []project.Block, refs []project.Ref) *Info {
	info := &Info{
		nodes: make(map[string]*Node, len(blocks)),
		refs:  refs,
	}

	for i := range blocks {
		b := &blocks[i]
		n := info.ensure(b.Name)
		n.Block = b
		n.Out = nil
		for _, r := range refs {
			if r.From != b.Name {
				continue
			}
			n.Out = append(n.Out, r.To)
			info.ensure(r.To)
		}
	}

	for _, r := range refs {
		from := info.ensure(r.From)
		if from.External() {
			from.Out = append(from.Out, r.To)
		}
		to := info.ensure(r.To)
		to.In = append(to.In, r.From)
	}
	return info
}

// FromProject is shorthand for Extract(p.Blocks, p.Refs).
func FromProject(p *project.Project) *Info {
	return Extract(p.Blocks, p.Refs)
}

func (info *Info) ensure(name string) *Node {
	if n, ok := info.nodes[name]; ok {
		return n
	}
	n := &Node{Name: name}
	info.nodes[name] = n
	info.order = append(info.order, name)
	return n
}

// Len returns the number of nodes.
func (info *Info) Len() int { return len(info.order) }

// Names returns node names in creation order.
func (info *Info) Names() []string {
	return append([]string(nil), info.order...)
}

// Node returns the node registered under name.
func (info *Info) Node(name string) (*Node, bool) {
	n, ok := info.nodes[name]
	return n, ok
}

// Nodes returns every node in creation order.
func (info *Info) Nodes() []*Node {
	out := make([]*Node, len(info.order))
	for i, name := range info.order {
		out[i] = info.nodes[name]
	}
	return out
}

// Refs returns the refs the table was built from.
func (info *Info) Refs() []project.Ref { return info.refs }

// RefsFrom returns the refs leaving name, in declaration order.
func (info *Info) RefsFrom(name string) []project.Ref {
	var out []project.Ref
	for _, r := range info.refs {
		if r.From == name {
			out = append(out, r)
		}
	}
	return out
}
