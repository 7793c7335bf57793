package route

import (
	"github.com/matzehuels/blockgraph/pkg/geom"
	"github.com/matzehuels/blockgraph/pkg/graph"
	"github.com/matzehuels/blockgraph/pkg/layout"
	"github.com/matzehuels/blockgraph/pkg/project"
)

// Edge is a routed ref.
type Edge struct {
	Ref      project.Ref
	FromSide geom.Side
	ToSide   geom.Side
	From     geom.Point
	To       geom.Point
	Curve    Curve
}

// Plan routes every ref of info whose endpoints both have a rectangle in l.
//
// Edges are returned in drawing order: row by row across all layers, with
// odd-indexed layers handled before even-indexed ones inside a row, and the
// refs of one block in declaration order.
func Plan(info *graph.Info, l *layout.Layout) []Edge {
	alloc := NewAllocator()
	for _, r := range info.Refs() {
		from, to, ok := rects(l, r)
		if !ok {
			continue
		}
		fs, ts := ChooseSides(from, to)
		alloc.Reserve(r.From, fs)
		alloc.Reserve(r.To, ts)
	}

	var edges []Edge
	for row := 0; row < l.MaxRows(); row++ {
		for _, parity := range [...]int{1, 0} {
			for li, layer := range l.Layers {
				if li%2 != parity || row >= len(layer) {
					continue
				}
				for _, r := range info.RefsFrom(layer[row]) {
					from, to, ok := rects(l, r)
					if !ok {
						continue
					}
					fs, ts := ChooseSides(from, to)
					edges = append(edges, Edge{
						Ref:      r,
						FromSide: fs,
						ToSide:   ts,
						From:     alloc.Next(r.From, fs, from, false),
						To:       alloc.Next(r.To, ts, to, true),
						Curve:    ChooseCurve(fs, ts),
					})
				}
			}
		}
	}
	return edges
}

func rects(l *layout.Layout, r project.Ref) (geom.Rect, geom.Rect, bool) {
	from, ok := l.Rect(r.From)
	if !ok {
		return geom.Rect{}, geom.Rect{}, false
	}
	to, ok := l.Rect(r.To)
	if !ok {
		return geom.Rect{}, geom.Rect{}, false
	}
	return from, to, true
}
