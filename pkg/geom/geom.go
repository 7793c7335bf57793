// Package geom holds the value types shared by layout, routing and drawing:
// points, axis-aligned rectangles and the four sides of a rectangle.
//
// The coordinate system is the SVG one: x grows to the right, y grows down.
package geom

import "math"

// Point is a position in user units.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Side identifies one of the four sides of a rectangle.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

// Sides lists every side in a fixed order.
var Sides = [...]Side{Left, Right, Top, Bottom}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Horizontal reports whether the side faces along the x axis (left or right).
func (s Side) Horizontal() bool { return s == Left || s == Right }

// Sign is -1 for sides facing toward the origin (left, top) and +1 otherwise.
func (s Side) Sign() float64 {
	if s == Left || s == Top {
		return -1
	}
	return 1
}
