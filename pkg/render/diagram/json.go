package diagram

import (
	"encoding/json"

	"github.com/matzehuels/blockgraph/pkg/geom"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Title     string      `json:"title,omitempty"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Padding   float64     `json:"padding"`
	Layers    [][]string  `json:"layers"`
	Unreached []string    `json:"unreached,omitempty"`
	Blocks    []jsonBlock `json:"blocks"`
	Edges     []jsonEdge  `json:"edges,omitempty"`
}

type jsonBlock struct {
	Name     string    `json:"name"`
	Layer    int       `json:"layer"`
	Row      int       `json:"row"`
	External bool      `json:"external,omitempty"`
	Rect     geom.Rect `json:"rect"`
	In       []string  `json:"in,omitempty"`
	Out      []string  `json:"out,omitempty"`
}

type jsonEdge struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Label    string     `json:"label,omitempty"`
	FromSide string     `json:"from_side"`
	ToSide   string     `json:"to_side"`
	Curve    string     `json:"curve"`
	Start    [2]float64 `json:"start"`
	End      [2]float64 `json:"end"`
}

// RenderJSON exports the computed layout: layers, block rectangles and
// routed refs with their anchors. Coordinates are unpadded.
func RenderJSON(d *Diagram, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	bounds := d.Layout.Bounds()
	out := jsonOutput{
		Title:     d.Title,
		Width:     bounds.Right() + 2*d.Config.Padding,
		Height:    bounds.Bottom() + 2*d.Config.Padding,
		Padding:   d.Config.Padding,
		Layers:    d.Layers,
		Unreached: d.Unreached,
		Blocks:    make([]jsonBlock, 0, d.Layout.Len()),
	}
	if out.Layers == nil {
		out.Layers = [][]string{}
	}

	for _, name := range d.Layout.Names() {
		n, _ := d.Info.Node(name)
		rect, _ := d.Layout.Rect(name)
		slot, _ := d.Layout.Slot(name)
		out.Blocks = append(out.Blocks, jsonBlock{
			Name:     name,
			Layer:    slot.Layer,
			Row:      slot.Row,
			External: n.External(),
			Rect:     rect,
			In:       n.In,
			Out:      n.Out,
		})
	}

	for _, e := range d.Edges {
		out.Edges = append(out.Edges, jsonEdge{
			From:     e.Ref.From,
			To:       e.Ref.To,
			Label:    e.Ref.Label,
			FromSide: e.FromSide.String(),
			ToSide:   e.ToSide.String(),
			Curve:    e.Curve.String(),
			Start:    [2]float64{e.From.X, e.From.Y},
			End:      [2]float64{e.To.X, e.To.Y},
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
