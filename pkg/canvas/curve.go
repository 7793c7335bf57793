package canvas

import (
	"encoding/xml"
	"fmt"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/blockgraph/pkg/geom"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/style"
)

// CurveOptions describes a ref drawn between two anchors.
type CurveOptions struct {
	From  geom.Side // side the curve leaves through
	To    geom.Side // side the curve enters through
	Start project.Marker
	End   project.Marker
	Label string // optional text laid along the curve
	Class string
	Style style.Style
}

// Curve draws a Bend when the sides are orthogonal and an Arc otherwise.
func (c *Canvas) Curve(from, to geom.Point, o CurveOptions) {
	if o.From.Horizontal() != o.To.Horizontal() {
		c.Bend(from, to, o)
		return
	}
	c.Arc(from, to, o)
}

// Bend draws a single cubic curve. Each control point lies on the axis of its
// side, three quarters of the distance between the anchors away from it.
func (c *Canvas) Bend(from, to geom.Point, o CurveOptions) {
	a, b := c.padPoint(from), c.padPoint(to)
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)

	p1 := a
	if o.From.Horizontal() {
		p1.X += o.From.Sign() * dx * 3 / 4
	} else {
		p1.Y += o.From.Sign() * dy * 3 / 4
	}
	p2 := b
	if o.To.Horizontal() {
		p2.X += o.To.Sign() * dx * 3 / 4
	} else {
		p2.Y += o.To.Sign() * dy * 3 / 4
	}

	d := "M" + pt(a) + " C " + pt(p1) + ", " + pt(p2) + ", " + pt(b)
	c.path(from, to, d, o)
}

// Arc draws an S curve through the midpoint of the anchors. The first half
// leaves along the axis of its side for half the distance, then turns an
// eighth of the cross distance toward the target; the second half mirrors it.
func (c *Canvas) Arc(from, to geom.Point, o CurveOptions) {
	a, b := c.padPoint(from), c.padPoint(to)
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	center := geom.Point{X: min(a.X, b.X) + dx/2, Y: min(a.Y, b.Y) + dy/2}

	var p1, p2 geom.Point
	if o.From.Horizontal() {
		sx, sy := o.From.Sign(), sign(b.Y-a.Y)
		p1 = geom.Point{X: a.X + sx*dx/2, Y: a.Y}
		p2 = geom.Point{X: a.X + sx*dx/2, Y: a.Y + sy*dy/8}
	} else {
		sx, sy := sign(b.X-a.X), o.From.Sign()
		p1 = geom.Point{X: a.X, Y: a.Y + sy*dy/2}
		p2 = geom.Point{X: a.X + sx*dx/8, Y: a.Y + sy*dy/2}
	}
	p4 := b
	if o.To.Horizontal() {
		p4.X += o.To.Sign() * dx / 2
	} else {
		p4.Y += o.To.Sign() * dy / 2
	}

	d := "M" + pt(a) + " C " + pt(p1) + ", " + pt(p2) + ", " + pt(center) + " S" + pt(p4) + " " + pt(b)
	c.path(from, to, d, o)
}

func (c *Canvas) path(from, to geom.Point, d string, o CurveOptions) {
	c.grow(max(from.X, to.X), max(from.Y, to.Y))
	c.paths++
	id := "ref-" + strconv.Itoa(c.paths)

	attrs := []string{attr("id", id)}
	if o.Class != "" {
		attrs = append(attrs, attr("class", o.Class))
	}
	attrs = append(attrs, markerAttrs(o.Start, o.End)...)
	attrs = append(attrs, styleAttr(o.Style))

	label, classAttr := o.Label, ""
	if o.Class != "" {
		classAttr = " " + attr("class", o.Class)
	}
	c.ops = append(c.ops, func(s *svg.SVG) {
		s.Path(d, attrs...)
		if label == "" {
			return
		}
		// svgo's Textpath cannot put attributes on textPath itself.
		fmt.Fprintf(s.Writer, `<text dy="-4" letter-spacing="2" font-weight="200"%s><textPath %s startOffset="40">`,
			classAttr, attr("xlink:href", "#"+id))
		xml.EscapeText(s.Writer, []byte(label))
		fmt.Fprintln(s.Writer, `</textPath></text>`)
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// =============================================================================
// Markers
// =============================================================================

type glyph struct {
	marker project.Marker
	draw   func(s *svg.SVG)
}

var glyphs = []glyph{
	{project.MarkerTriangle, func(s *svg.SVG) { s.Path("M 0 0 L 10 5 L 0 10 L 5 5 z", `fill="#000"`) }},
	{project.MarkerTriangleEmpty, func(s *svg.SVG) { s.Path("M 0 0 L 10 5 L 0 10 z", `fill="#fff"`, `stroke="#000"`) }},
	{project.MarkerDiamond, func(s *svg.SVG) { s.Path("M 5 1 L 9 5 L 5 9 L 1 5 z", `fill="#000"`) }},
	{project.MarkerDiamondEmpty, func(s *svg.SVG) { s.Path("M 5 1 L 9 5 L 5 9 L 1 5 z", `fill="#fff"`, `stroke="#000"`) }},
	{project.MarkerCircle, func(s *svg.SVG) { s.Circle(5, 5, 4, `fill="#000"`) }},
	{project.MarkerCircleEmpty, func(s *svg.SVG) { s.Circle(5, 5, 4, `fill="#fff"`, `stroke="#000"`) }},
}

// writeMarkers defines every glyph twice: once anchored at its tip for the end
// of a path, and once with the suffix "-start" anchored at its back edge for
// the start of a path.
func writeMarkers(s *svg.SVG) {
	for _, variant := range []struct {
		suffix string
		refX   int
	}{{"", 10}, {"-start", 0}} {
		for _, g := range glyphs {
			s.Marker(string(g.marker)+variant.suffix, variant.refX, 5, 10, 10,
				`viewBox="0 0 10 10"`, `markerUnits="strokeWidth"`, `orient="auto"`)
			g.draw(s)
			s.MarkerEnd()
		}
	}
}
