package diagram

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/blockgraph/pkg/canvas"
	"github.com/matzehuels/blockgraph/pkg/geom"
	"github.com/matzehuels/blockgraph/pkg/graph"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/style"
)

// Scale of sub-heading text relative to the base font size.
const subheadingScale = 0.9

var (
	subheadingStyle = style.Of("fill", "#555", "font-weight", "bold", "text-decoration", "underline")
	subheadingRow   = style.Of("stroke", "none", "fill", "#fff")
)

// BlockHeight returns the height of a block with parts as drawn on c:
// one header row, plus one row per item and one sub-heading row per named
// part.
func BlockHeight(c *canvas.Canvas, parts []project.Part) float64 {
	line := c.FontHeight(1)
	h := line
	for _, p := range parts {
		h += float64(len(p.Items)) * line
		if p.Name != "" {
			h += c.FontHeight(subheadingScale)
		}
	}
	return h
}

// Truncate keeps the last n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// Hash returns a short stable identifier for name, safe to use in class names.
func Hash(name string) string {
	return strconv.FormatUint(xxhash.Sum64String(name), 36)
}

// Classes returns the class list of a block group or ref path.
// cur may be empty; in and out are deduplicated keeping first occurrence.
func Classes(cur string, in, out []string) string {
	var parts []string
	if cur != "" {
		parts = append(parts, "block__cur_"+Hash(cur))
	}
	parts = appendClasses(parts, "block__in_", in)
	parts = appendClasses(parts, "block__out_", out)
	return strings.Join(parts, " ")
}

func appendClasses(dst []string, prefix string, names []string) []string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		dst = append(dst, prefix+Hash(n))
	}
	return dst
}

// drawBlock draws node n inside r.
func drawBlock(c *canvas.Canvas, res *style.Resolver, n *graph.Node, r geom.Rect) {
	// Text is cut from the left to as many characters as underscores fit in the width.
	fit := c.Fit(r.W, '_', 1)
	line := c.FontHeight(1)
	short := c.FontHeight(subheadingScale)
	left, right := r.X, r.Right()

	head := res.Resolve(n.Presets())
	separator := head.Rect

	c.GroupStart(Classes(n.Name, n.In, n.Out))

	cy := r.Y + line
	c.Rect(geom.Rect{X: left, Y: cy - line, W: r.W, H: line}, head.Rect.Set("stroke", "none"))
	c.Text(geom.Point{X: left, Y: cy}, Truncate(n.Name, fit), style.Of("font-weight", "bold").With(head.Text), 1)

	for _, part := range n.Parts() {
		if part.Name != "" {
			cy += short
			c.Rect(geom.Rect{X: left, Y: cy - short, W: r.W, H: short}, subheadingRow)
			c.Text(geom.Point{X: left, Y: cy}, Truncate(part.Name, fit), subheadingStyle, subheadingScale)
			c.Line(geom.Point{X: left, Y: cy - short}, geom.Point{X: right, Y: cy - short}, separator)
		}
		for i, item := range part.Items {
			if i > 0 {
				c.Line(geom.Point{X: left, Y: cy}, geom.Point{X: right, Y: cy}, separator.Set("stroke-dasharray", "4 4"))
			}
			cy += line
			row := res.Resolve(item.Presets)
			c.Rect(geom.Rect{X: left, Y: cy - line, W: r.W, H: line}, row.Rect.Set("stroke", "none"))
			c.Text(geom.Point{X: left, Y: cy}, Truncate(item.Value, fit), row.Text, 1)
		}
		top := cy - float64(len(part.Items))*line
		c.Line(geom.Point{X: left, Y: top}, geom.Point{X: right, Y: top}, separator)
	}

	c.Rect(geom.Rect{X: left, Y: r.Y, W: r.W, H: BlockHeight(c, n.Parts())}, separator.Set("fill", "none"))
	c.GroupEnd()
}
