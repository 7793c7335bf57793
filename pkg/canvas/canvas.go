package canvas

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/blockgraph/pkg/geom"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/style"
)

// Options configures a canvas.
type Options struct {
	Padding     float64 // margin added around everything drawn
	FontSize    float64 // base font size in points
	TextPadding float64 // space between text and the edge of its row
	FontFamily  string  // defaults to Consolas
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Padding: 16, FontSize: 12, TextPadding: 12, FontFamily: "Consolas"}
}

// Base style of every primitive before its own style applies.
var baseStyle = style.Of("stroke", "#000000", "fill", "none")

type op func(s *svg.SVG)

// Canvas records primitives and tracks the extent of what was drawn.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	opts    Options
	ops     []op
	maxX    float64
	maxY    float64
	paths   int
	css     []string
	scripts []string
}

// New returns an empty canvas.
func New(opts Options) *Canvas {
	if opts.FontFamily == "" {
		opts.FontFamily = "Consolas"
	}
	return &Canvas{opts: opts}
}

// Options returns the canvas options.
func (c *Canvas) Options() Options { return c.opts }

// Len returns the number of recorded primitives.
func (c *Canvas) Len() int { return len(c.ops) }

// Size returns the document size: the extent of everything drawn plus
// padding on every side.
func (c *Canvas) Size() (w, h float64) {
	return c.maxX + 2*c.opts.Padding, c.maxY + 2*c.opts.Padding
}

func (c *Canvas) grow(x, y float64) {
	c.maxX = max(c.maxX, x)
	c.maxY = max(c.maxY, y)
}

// pad shifts a drawing coordinate into document space.
func (c *Canvas) pad(v float64) float64 { return v + c.opts.Padding }

func (c *Canvas) padPoint(p geom.Point) geom.Point {
	return geom.Point{X: c.pad(p.X), Y: c.pad(p.Y)}
}

// =============================================================================
// Shapes
// =============================================================================

// Rect draws r. Edges are rounded independently so that adjacent rows share
// an edge exactly.
func (c *Canvas) Rect(r geom.Rect, st style.Style) {
	c.grow(r.Right(), r.Bottom())
	x0, y0 := round(c.pad(r.X)), round(c.pad(r.Y))
	x1, y1 := round(c.pad(r.Right())), round(c.pad(r.Bottom()))
	css := styleAttr(st)
	c.ops = append(c.ops, func(s *svg.SVG) {
		s.Rect(x0, y0, x1-x0, y1-y0, css)
	})
}

// Circle draws a circle of radius r around center.
func (c *Canvas) Circle(center geom.Point, r float64, st style.Style) {
	c.grow(center.X+r, center.Y+r)
	p := c.padPoint(center)
	css := styleAttr(st)
	c.ops = append(c.ops, func(s *svg.SVG) {
		s.Circle(round(p.X), round(p.Y), round(r), css)
	})
}

// Line draws a straight segment.
func (c *Canvas) Line(from, to geom.Point, st style.Style) {
	c.grow(max(from.X, to.X), max(from.Y, to.Y))
	a, b := c.padPoint(from), c.padPoint(to)
	d := "M" + pt(a) + " L" + pt(b)
	css := styleAttr(st)
	c.ops = append(c.ops, func(s *svg.SVG) {
		s.Path(d, css)
	})
}

// =============================================================================
// Text
// =============================================================================

// Text draws s with its baseline just above p, indented by the text padding.
// k scales the font size.
func (c *Canvas) Text(p geom.Point, s string, st style.Style, k float64) {
	c.grow(p.X+c.TextLength(s, k), p.Y)
	x := c.pad(p.X) + c.opts.TextPadding
	y := c.pad(p.Y) - c.opts.FontSize*0.25/1.5*k - c.opts.TextPadding
	text := style.Of("fill", "#000000", "stroke", "none", "font-size", num(c.opts.FontSize*k)+"pt").With(st)
	css := styleAttr(text)
	c.ops = append(c.ops, func(w *svg.SVG) {
		w.Text(round(x), round(y), s, css)
	})
}

// =============================================================================
// Groups
// =============================================================================

// GroupStart opens a group carrying class. Every primitive until the matching
// GroupEnd belongs to it.
func (c *Canvas) GroupStart(class string) {
	attrs := []string{}
	if class != "" {
		attrs = append(attrs, attr("class", class))
	}
	attrs = append(attrs, styleAttr(nil))
	c.ops = append(c.ops, func(s *svg.SVG) {
		s.Group(attrs...)
	})
}

// GroupEnd closes the innermost open group.
func (c *Canvas) GroupEnd() {
	c.ops = append(c.ops, func(s *svg.SVG) {
		s.Gend()
	})
}

// =============================================================================
// Document
// =============================================================================

// AddCSS embeds a stylesheet in the document definitions.
func (c *Canvas) AddCSS(css string) { c.css = append(c.css, css) }

// AddScript embeds a script at the end of the document.
func (c *Canvas) AddScript(js string) { c.scripts = append(c.scripts, js) }

// Assemble writes the document: root element, title, marker definitions and
// every primitive in the order it was drawn.
func (c *Canvas) Assemble(title string) []byte {
	var buf bytes.Buffer
	s := svg.New(&buf)

	fw, fh := c.Size()
	w, h := int(math.Ceil(fw)), int(math.Ceil(fh))
	root := style.Of(
		"font-size", num(c.opts.FontSize)+"pt",
		"font-family", c.opts.FontFamily,
		"stroke-width", "1",
		"stroke-linejoin", "round",
		"stroke-linecap", "round",
	)
	s.Start(w, h,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h),
		attr("style", root.String()),
	)
	s.Title(title)

	s.Def()
	writeMarkers(s)
	for _, css := range c.css {
		fmt.Fprintf(s.Writer, "<style type=\"text/css\"><![CDATA[\n%s\n]]></style>\n", css)
	}
	s.DefEnd()

	for _, o := range c.ops {
		o(s)
	}

	for _, js := range c.scripts {
		fmt.Fprintf(s.Writer, "<script type=\"text/javascript\"><![CDATA[\n%s\n]]></script>\n", js)
	}
	s.End()
	return buf.Bytes()
}

// =============================================================================
// Helpers
// =============================================================================

func round(v float64) int { return int(math.Round(v)) }

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func pt(p geom.Point) string { return num(p.X) + " " + num(p.Y) }

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

// attr formats one XML attribute. svgo writes any argument containing "="
// verbatim, so every attribute value goes through here escaped.
func attr(name, value string) string {
	return name + `="` + attrEscaper.Replace(value) + `"`
}

// styleAttr is the style attribute for st layered over the base style.
func styleAttr(st style.Style) string {
	return attr("style", baseStyle.With(st).String())
}

func markerAttrs(start, end project.Marker) []string {
	var out []string
	if end.Valid() {
		out = append(out, attr("marker-end", "url(#"+string(end)+")"))
	}
	if start.Valid() {
		out = append(out, attr("marker-start", "url(#"+string(start)+"-start)"))
	}
	return out
}
