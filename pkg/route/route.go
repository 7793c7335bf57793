package route

import "github.com/matzehuels/blockgraph/pkg/geom"

// Curve is the path shape used for a ref.
type Curve int

const (
	// Bend is a single cubic curve, used when the two sides are orthogonal.
	Bend Curve = iota
	// Arc is a two-segment S curve, used when the sides are parallel.
	Arc
)

func (c Curve) String() string {
	if c == Arc {
		return "arc"
	}
	return "bend"
}

// ChooseSides picks the side of from that a ref leaves and the side of to
// that it enters.
//
// Blocks that overlap horizontally are connected bottom to top (or top to
// bottom when from is lower). Otherwise blocks that are close vertically,
// within one and a half times their combined heights, are connected right to
// left (or left to right when from is further right). Blocks far apart on
// both axes leave sideways and enter from above or below.
func ChooseSides(from, to geom.Rect) (geom.Side, geom.Side) {
	spanX := max(from.Right(), to.Right()) - min(from.X, to.X)
	if spanX < from.W+to.W {
		if from.Y > to.Y {
			return geom.Top, geom.Bottom
		}
		return geom.Bottom, geom.Top
	}

	spanY := max(from.Bottom(), to.Bottom()) - min(from.Y, to.Y)
	if spanY < (from.H+to.H)*1.5 {
		if from.X > to.X {
			return geom.Left, geom.Right
		}
		return geom.Right, geom.Left
	}

	fromSide, toSide := geom.Left, geom.Bottom
	if from.X < to.X {
		fromSide = geom.Right
	}
	if from.Y < to.Y {
		toSide = geom.Top
	}
	return fromSide, toSide
}

// ChooseCurve returns Bend for orthogonal sides and Arc for parallel ones.
func ChooseCurve(from, to geom.Side) Curve {
	if from.Horizontal() != to.Horizontal() {
		return Bend
	}
	return Arc
}

// Anchor returns the i-th of count anchor points on side of r.
//
// The usable part of a side excludes a twelfth of its length at each corner.
// The i-th point sits at (i+0.5)/count of that range, measured from the
// corner each direction starts at: outgoing refs start at the top of the
// right side and the left of the top side, incoming refs at the top of the
// left side and the left of the bottom side. The other direction starts from
// the opposite corner.
func Anchor(r geom.Rect, side geom.Side, i, count int, incoming bool) geom.Point {
	if count <= 0 {
		count = 1
	}
	ascending := incoming
	if side == geom.Right || side == geom.Top {
		ascending = !incoming
	}
	frac := (float64(count) - float64(i) - 0.5) / float64(count)
	if ascending {
		frac = (float64(i) + 0.5) / float64(count)
	}

	offW, offH := r.W/12, r.H/12
	switch side {
	case geom.Left:
		return geom.Point{X: r.X, Y: r.Y + offH + (r.H-2*offH)*frac}
	case geom.Right:
		return geom.Point{X: r.Right(), Y: r.Y + offH + (r.H-2*offH)*frac}
	case geom.Top:
		return geom.Point{X: r.X + offW + (r.W-2*offW)*frac, Y: r.Y}
	default:
		return geom.Point{X: r.X + offW + (r.W-2*offW)*frac, Y: r.Bottom()}
	}
}

type slotKey struct {
	node string
	side geom.Side
}

type slot struct {
	count int
	out   int
	in    int
}

// Allocator hands out anchor points in two passes: Reserve every ref end
// first, then call Next in drawing order.
type Allocator struct {
	slots map[slotKey]*slot
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{slots: make(map[slotKey]*slot)}
}

func (a *Allocator) get(node string, side geom.Side) *slot {
	k := slotKey{node, side}
	s, ok := a.slots[k]
	if !ok {
		s = &slot{}
		a.slots[k] = s
	}
	return s
}

// Reserve counts one more ref end on side of node.
func (a *Allocator) Reserve(node string, side geom.Side) {
	a.get(node, side).count++
}

// Count returns the number of ref ends reserved on side of node.
func (a *Allocator) Count(node string, side geom.Side) int {
	if s, ok := a.slots[slotKey{node, side}]; ok {
		return s.count
	}
	return 0
}

// Next returns the next free anchor on side of node, whose block is r.
func (a *Allocator) Next(node string, side geom.Side, r geom.Rect, incoming bool) geom.Point {
	s := a.get(node, side)
	var p geom.Point
	if incoming {
		p = Anchor(r, side, s.in, s.count, true)
		s.in++
	} else {
		p = Anchor(r, side, s.out, s.count, false)
		s.out++
	}
	return p
}
