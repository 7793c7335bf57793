package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blockgraph/pkg/graph"
	"github.com/matzehuels/blockgraph/pkg/layout"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/style"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists every part and item under the block name.
	// When false, only the name is shown.
	Detailed bool
}

var arrowShapes = map[project.Marker]string{
	project.MarkerNone:          "none",
	project.MarkerTriangle:      "normal",
	project.MarkerTriangleEmpty: "onormal",
	project.MarkerDiamond:       "diamond",
	project.MarkerDiamondEmpty:  "odiamond",
	project.MarkerCircle:        "dot",
	project.MarkerCircleEmpty:   "odot",
}

// ToDOT converts p to Graphviz DOT source.
func ToDOT(p *project.Project, opts Options) string {
	info := graph.FromProject(p)
	res := style.NewResolver(style.BuiltinPresets(), p.Presets)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.4;\n")
	if p.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", p.Title)
	}
	buf.WriteString("\n")

	for _, n := range info.Nodes() {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), res.Resolve(n.Presets()))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, layer := range layout.AssignLayers(info) {
		quoted := make([]string, len(layer))
		for i, name := range layer {
			quoted[i] = strconv.Quote(name)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}

	buf.WriteString("\n")
	for _, r := range info.Refs() {
		attrs := fmtEdgeAttrs(r, res.Resolve(r.Presets))
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.From, r.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	if !detailed || len(n.Parts()) == 0 {
		return n.Name
	}

	lines := []string{n.Name}
	for _, part := range n.Parts() {
		lines = append(lines, "")
		if part.Name != "" {
			lines = append(lines, "["+part.Name+"]")
		}
		for _, it := range part.Items {
			lines = append(lines, it.Value)
		}
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(n *graph.Node, label string, r style.Resolved) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := r.Rect.Get("fill"); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if color, ok := r.Text.Get("fill"); ok {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", color))
	}
	if border, ok := r.Line.Get("stroke"); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", border))
	}
	if n.External() {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

func fmtEdgeAttrs(r project.Ref, res style.Resolved) []string {
	attrs := []string{
		fmt.Sprintf("arrowhead=%s", arrowShapes[r.End]),
		fmt.Sprintf("arrowtail=%s", arrowShapes[r.Start]),
		"dir=both",
	}
	if r.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", r.Label))
	}
	if stroke, ok := res.Line.Get("stroke"); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", stroke))
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in user units so the SVG scales like the block diagram.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
