// Package pipeline turns a project into rendered artifacts.
//
// This package implements the layout → render → convert pipeline shared by
// the CLI and the HTTP server. By centralizing it, both entry points cache,
// log and validate the same way.
//
// # Architecture
//
// A run has three stages:
//
//  1. Layout: layer, place and route the project ([diagram.Compute])
//  2. Render: draw SVG (block diagram or Graphviz view), JSON and DOT
//  3. Convert: turn the SVG into PNG and PDF concurrently
//
// Every artifact is cached under a key derived from the project hash and
// the options that affect its bytes, so a repeated run skips all stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, p, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [diagram.Compute]: github.com/matzehuels/blockgraph/pkg/render/diagram.Compute
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockgraph/pkg/cache"
	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Visualization types.
const (
	VizDiagram  = "diagram"
	VizNodelink = "nodelink"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// ValidVizTypes lists the supported visualization types.
var ValidVizTypes = []string{VizDiagram, VizNodelink}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Config    diagram.Config `json:"config"`
	Formats   []string       `json:"formats,omitempty"`
	VizType   string         `json:"viz_type,omitempty"`
	Highlight bool           `json:"highlight,omitempty"`
	Scale     float64        `json:"scale,omitempty"`

	// Refresh bypasses cached artifacts; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ProjectHash is the content hash of the input project.
	ProjectHash string

	// Diagram is the computed layout; nil when every artifact was cached.
	Diagram *diagram.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Blocks     int
	Refs       int
	Layers     int
	Unreached  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	Hits      []string
	RenderHit bool // every requested artifact was cached
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !slices.Contains(ValidVizTypes, vizType) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid viz_type: %q (must be one of: diagram, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Config == (diagram.Config{}) {
		o.Config = diagram.DefaultConfig()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.VizType == "" {
		o.VizType = VizDiagram
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsNodelink reports whether SVG output comes from Graphviz.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT:
		return k
	case FormatSVG, FormatPNG, FormatPDF:
		if o.IsNodelink() {
			k.Format = VizNodelink + "-" + format
			return k
		}
		k.Highlight = o.Highlight
	}
	k.BlockWidth = o.Config.BlockWidth
	k.VerticalGap = o.Config.VerticalGap
	k.HorizontalGap = o.Config.HorizontalGap
	k.Padding = o.Config.Padding
	k.FontSize = o.Config.FontSize
	k.TextPadding = o.Config.TextPadding
	return k
}

// needsDiagram reports whether any of formats requires the block layout.
func (o *Options) needsDiagram(formats []string) bool {
	for _, f := range formats {
		switch f {
		case FormatJSON:
			return true
		case FormatSVG, FormatPNG, FormatPDF:
			if !o.IsNodelink() {
				return true
			}
		}
	}
	return false
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
