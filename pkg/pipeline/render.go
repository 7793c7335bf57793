package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/render"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
	"github.com/matzehuels/blockgraph/pkg/render/nodelink"
)

// Render generates the requested formats without touching a cache.
//
// d may be nil when no format needs the block layout (DOT output or the
// node-link view); otherwise it must come from [diagram.Compute] on p.
// PNG and PDF conversions run concurrently.
func Render(ctx context.Context, p *project.Project, d *diagram.Diagram, formats []string, opts Options) (map[string][]byte, error) {
	if d == nil && opts.needsDiagram(formats) {
		d = diagram.Compute(p, opts.Config)
	}

	artifacts := make(map[string][]byte, len(formats))
	var svg []byte
	svgFor := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, p, d, opts)
		return svg, err
	}

	var convert []string
	for _, format := range formats {
		switch format {
		case FormatSVG:
			data, err := svgFor()
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := diagram.RenderJSON(d, diagram.WithJSONIndent())
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(nodelink.ToDOT(p, nodelink.Options{Detailed: true}))
		case FormatPNG, FormatPDF:
			if _, err := svgFor(); err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			convert = append(convert, format)
		default:
			return nil, ValidateFormat(format)
		}
	}

	if len(convert) == 0 {
		return artifacts, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range convert {
		g.Go(func() error {
			var data []byte
			var err error
			if format == FormatPNG {
				data, err = render.ToPNG(gctx, svg, opts.Scale)
			} else {
				data, err = render.ToPDF(gctx, svg)
			}
			if err != nil {
				return fmt.Errorf("convert %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, p *project.Project, d *diagram.Diagram, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(p, nodelink.Options{Detailed: true}))
	}
	var svgOpts []diagram.Option
	if opts.Highlight {
		svgOpts = append(svgOpts, diagram.WithHighlight())
	}
	return d.SVG(svgOpts...), nil
}
