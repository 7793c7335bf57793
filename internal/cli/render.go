package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/blockgraph/pkg/errors"
	pkgio "github.com/matzehuels/blockgraph/pkg/io"
	"github.com/matzehuels/blockgraph/pkg/pipeline"
	"github.com/matzehuels/blockgraph/pkg/render"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file, base path for several formats, or "-" for stdout
	formats   string // comma-separated output formats
	viz       string // diagram or nodelink
	highlight bool   // embed the click-to-highlight script
	scale     float64
	noCache   bool
	refresh   bool

	geometry diagram.Config // flag values; applied only where the flag was set
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a project to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a project file. The input encoding follows the extension:
.json and .toml are decoded as such, anything else is read as text notation.

Examples:
  blockgraph render shop.txt                      # writes shop.svg
  blockgraph render shop.json -f svg,png -o out/  # writes out/shop.svg and out/shop.png
  blockgraph render shop.txt -f dot -o -          # DOT to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts, cmd.Flags())
		},
	}

	def := c.Config.Diagram
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, directory, or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.viz, "viz", "t", pipeline.VizDiagram, "visualization: diagram, nodelink")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "highlight related blocks on click (SVG)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	addGeometryFlags(cmd.Flags(), &opts.geometry, def)

	return cmd
}

// addGeometryFlags registers the diagram knobs.
func addGeometryFlags(fs *pflag.FlagSet, g *diagram.Config, def diagram.Config) {
	fs.Float64Var(&g.BlockWidth, "block-width", def.BlockWidth, "block width")
	fs.Float64Var(&g.VerticalGap, "vertical-gap", def.VerticalGap, "gap between blocks in a layer")
	fs.Float64Var(&g.HorizontalGap, "horizontal-gap", def.HorizontalGap, "gap between layers")
	fs.Float64Var(&g.Padding, "padding", def.Padding, "padding around the drawing")
	fs.Float64Var(&g.FontSize, "font-size", def.FontSize, "font size in points")
	fs.Float64Var(&g.TextPadding, "text-padding", def.TextPadding, "padding around text")
}

// geometry overlays the flags the user set on the configured geometry.
func geometry(fs *pflag.FlagSet, flags, cfg diagram.Config) diagram.Config {
	set := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("block-width", &cfg.BlockWidth, flags.BlockWidth)
	set("vertical-gap", &cfg.VerticalGap, flags.VerticalGap)
	set("horizontal-gap", &cfg.HorizontalGap, flags.HorizontalGap)
	set("padding", &cfg.Padding, flags.Padding)
	set("font-size", &cfg.FontSize, flags.FontSize)
	set("text-padding", &cfg.TextPadding, flags.TextPadding)
	return cfg
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts, fs *pflag.FlagSet) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p, err := pkgio.Import(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded project", "path", input, "blocks", len(p.Blocks), "refs", len(p.Refs))

	popts := pipeline.Options{
		Config:    geometry(fs, opts.geometry, c.Config.Diagram),
		Formats:   parseFormats(opts.formats),
		VizType:   opts.viz,
		Highlight: opts.highlight,
		Scale:     opts.scale,
		Refresh:   opts.refresh,
		Logger:    logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "-" && len(popts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes exactly one format, got %s", strings.Join(popts.Formats, ","))
	}

	if needsConversion(popts.Formats) && !render.Available() {
		printNextStep("PNG and PDF need rsvg-convert", "install librsvg (e.g. brew install librsvg)")
		return errors.New(errors.ErrCodeConverterMissing, "rsvg-convert not found in PATH")
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if needsConversion(popts.Formats) && opts.output != "-" && isTerminal(os.Stderr) {
		spin = newSpinnerWithContext(ctx, "Rendering...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, p, popts)
	if spin != nil {
		if err != nil {
			spin.StopWithError("Render failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %s", input))
	printStats(result.Stats.Blocks, result.Stats.Refs, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	if result.Stats.Unreached > 0 {
		printWarning("%d block(s) could not be layered and were placed last", result.Stats.Unreached)
	}
	return nil
}

func needsConversion(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}

// outputPaths maps each format to a file path.
//
// Without -o, files are written next to the input. A directory (existing, or
// ending in a separator) receives <input-base>.<format>. A single format
// with a file path writes exactly that file; several formats strip a known
// extension from it and append their own.
func outputPaths(output, input string, formats []string) map[string]string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := filepath.Dir(input)

	paths := make(map[string]string, len(formats))
	switch {
	case output == "":
		for _, f := range formats {
			paths[f] = filepath.Join(dir, base+"."+f)
		}
	case isDir(output):
		for _, f := range formats {
			paths[f] = filepath.Join(output, base+"."+f)
		}
	case len(formats) == 1:
		paths[formats[0]] = output
	default:
		stem := output
		if ext := filepath.Ext(output); slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
			stem = strings.TrimSuffix(output, ext)
		}
		for _, f := range formats {
			paths[f] = stem + "." + f
		}
	}
	return paths
}

func isDir(path string) bool {
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
