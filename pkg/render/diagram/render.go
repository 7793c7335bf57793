package diagram

import (
	"github.com/matzehuels/blockgraph/pkg/canvas"
	"github.com/matzehuels/blockgraph/pkg/graph"
	"github.com/matzehuels/blockgraph/pkg/layout"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/route"
	"github.com/matzehuels/blockgraph/pkg/style"
)

// Diagram is a laid-out and routed project, ready to be drawn.
type Diagram struct {
	Title     string
	Config    Config
	Info      *graph.Info
	Layers    [][]string
	Unreached []string
	Layout    *layout.Layout
	Edges     []route.Edge

	styles *style.Resolver
}

// Compute runs every step of the pipeline except drawing.
func Compute(p *project.Project, cfg Config) *Diagram {
	info := graph.FromProject(p)
	layers := layout.AssignLayers(info)

	metrics := canvas.New(cfg.canvasOptions())
	l := layout.Build(info, layers, cfg.layoutOptions(), func(n *graph.Node) float64 {
		return BlockHeight(metrics, n.Parts())
	})

	return &Diagram{
		Title:     p.Title,
		Config:    cfg,
		Info:      info,
		Layers:    layers,
		Unreached: layout.Unreached(info),
		Layout:    l,
		Edges:     route.Plan(info, l),
		styles:    style.NewResolver(style.BuiltinPresets(), p.Presets),
	}
}

// Render draws p as an SVG document.
func Render(p *project.Project, cfg Config, opts ...Option) []byte {
	return Compute(p, cfg).SVG(opts...)
}

// Option customizes SVG output.
type Option func(*renderer)

type renderer struct {
	highlight bool
}

// WithHighlight embeds a script that fades every block and ref unrelated to
// the block last clicked. Clicking the background clears the selection.
func WithHighlight() Option { return func(r *renderer) { r.highlight = true } }

// SVG draws the diagram.
func (d *Diagram) SVG(opts ...Option) []byte {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	c := canvas.New(d.Config.canvasOptions())
	d.draw(c)
	if r.highlight {
		c.AddCSS(highlightCSS)
		c.AddScript(highlightJS)
	}
	return c.Assemble(d.Title)
}

func (d *Diagram) draw(c *canvas.Canvas) {
	for _, e := range d.Edges {
		c.Curve(e.From, e.To, canvas.CurveOptions{
			From:  e.FromSide,
			To:    e.ToSide,
			Start: e.Ref.Start,
			End:   e.Ref.End,
			Label: e.Ref.Label,
			Class: Classes("", []string{e.Ref.From}, []string{e.Ref.To}),
			Style: d.styles.Resolve(e.Ref.Presets).Line,
		})
	}
	for _, name := range d.Layout.Names() {
		n, _ := d.Info.Node(name)
		r, _ := d.Layout.Rect(name)
		drawBlock(c, d.styles, n, r)
	}
}

const highlightCSS = `g[class*="block__cur_"] { cursor: pointer; }
svg.focus g[class*="block__cur_"]:not(.related),
svg.focus path[class*="block__"]:not(.related),
svg.focus text[class*="block__"]:not(.related) { opacity: 0.2; }`

const highlightJS = `(function () {
  var root = document.documentElement;
  function clear() {
    root.classList.remove('focus');
    root.querySelectorAll('.related').forEach(function (el) { el.classList.remove('related'); });
  }
  root.querySelectorAll('g[class*="block__cur_"]').forEach(function (g) {
    g.addEventListener('click', function (ev) {
      ev.stopPropagation();
      var cur = Array.prototype.find.call(g.classList, function (c) { return c.indexOf('block__cur_') === 0; });
      var id = cur.slice('block__cur_'.length);
      clear();
      root.classList.add('focus');
      root.querySelectorAll('.block__cur_' + id + ', .block__in_' + id + ', .block__out_' + id).forEach(function (el) {
        el.classList.add('related');
      });
    });
  });
  root.addEventListener('click', clear);
})();`
