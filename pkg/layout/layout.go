package layout

import (
	"github.com/matzehuels/blockgraph/pkg/geom"
	"github.com/matzehuels/blockgraph/pkg/graph"
)

// Options controls the grid Build places blocks on.
type Options struct {
	BlockWidth    float64 // width of every block
	VerticalGap   float64 // space between stacked blocks and the stagger of odd layers
	HorizontalGap float64 // space between layers
}

// HeightFunc returns the height of a node's block. It must depend only on
// the node's content, never on its position.
type HeightFunc func(n *graph.Node) float64

// Slot locates a node inside the layer grid.
type Slot struct {
	Layer int
	Row   int
}

// Layout is the positioned form of a layered graph.
type Layout struct {
	Layers [][]string
	order  []string
	rects  map[string]geom.Rect
	slots  map[string]Slot
}

// Build places every node of layers.
//
// Layer i becomes column i at x = i*(BlockWidth+HorizontalGap). Inside a
// column, nodes are stacked top to bottom separated by VerticalGap. Even
// columns start one VerticalGap lower than odd ones, and even rows are nudged
// right by HorizontalGap/4, so refs between neighbors in adjacent columns do
// not run along a shared horizontal line.
//
// Names in layers that info does not know are skipped.
func Build(info *graph.Info, layers [][]string, opts Options, height HeightFunc) *Layout {
	l := &Layout{
		Layers: layers,
		rects:  make(map[string]geom.Rect, info.Len()),
		slots:  make(map[string]Slot, info.Len()),
	}
	for i, layer := range layers {
		x := float64(i) * (opts.BlockWidth + opts.HorizontalGap)
		y := 0.0
		if i%2 == 0 {
			y = opts.VerticalGap
		}
		for j, name := range layer {
			n, ok := info.Node(name)
			if !ok {
				continue
			}
			if _, dup := l.rects[name]; dup {
				continue
			}
			bx := x
			if j%2 == 0 {
				bx += opts.HorizontalGap / 4
			}
			h := height(n)
			l.rects[name] = geom.Rect{X: bx, Y: y, W: opts.BlockWidth, H: h}
			l.slots[name] = Slot{Layer: i, Row: j}
			l.order = append(l.order, name)
			y += h + opts.VerticalGap
		}
	}
	return l
}

// Rect returns the rectangle assigned to name.
func (l *Layout) Rect(name string) (geom.Rect, bool) {
	r, ok := l.rects[name]
	return r, ok
}

// Slot returns the grid position of name.
func (l *Layout) Slot(name string) (Slot, bool) {
	s, ok := l.slots[name]
	return s, ok
}

// Names returns laid-out names in placement order (layer by layer).
func (l *Layout) Names() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of placed nodes.
func (l *Layout) Len() int { return len(l.order) }

// Bounds returns the smallest rectangle containing every block.
func (l *Layout) Bounds() geom.Rect {
	var b geom.Rect
	for i, name := range l.order {
		if i == 0 {
			b = l.rects[name]
			continue
		}
		b = b.Union(l.rects[name])
	}
	return b
}

// MaxRows returns the length of the longest layer.
func (l *Layout) MaxRows() int {
	m := 0
	for _, layer := range l.Layers {
		m = max(m, len(layer))
	}
	return m
}
