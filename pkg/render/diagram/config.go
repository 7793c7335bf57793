package diagram

import (
	"github.com/matzehuels/blockgraph/pkg/canvas"
	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/layout"
)

// Config holds the geometry knobs of a render.
type Config struct {
	BlockWidth    float64 `json:"block_width" toml:"block_width"`
	VerticalGap   float64 `json:"vertical_gap" toml:"vertical_gap"`
	HorizontalGap float64 `json:"horizontal_gap" toml:"horizontal_gap"`
	Padding       float64 `json:"padding" toml:"padding"`
	FontSize      float64 `json:"font_size" toml:"font_size"`
	TextPadding   float64 `json:"text_padding" toml:"text_padding"`
}

// Default geometry.
const (
	DefaultBlockWidth    = 200
	DefaultVerticalGap   = 100
	DefaultHorizontalGap = 100
	DefaultPadding       = 32
	DefaultFontSize      = 8
	DefaultTextPadding   = 8
)

// DefaultConfig returns the default geometry.
func DefaultConfig() Config {
	return Config{
		BlockWidth:    DefaultBlockWidth,
		VerticalGap:   DefaultVerticalGap,
		HorizontalGap: DefaultHorizontalGap,
		Padding:       DefaultPadding,
		FontSize:      DefaultFontSize,
		TextPadding:   DefaultTextPadding,
	}
}

// Validate rejects geometry that cannot produce a drawable diagram.
func (c Config) Validate() error {
	switch {
	case c.BlockWidth <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "block width must be positive, got %v", c.BlockWidth)
	case c.FontSize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %v", c.FontSize)
	case c.VerticalGap < 0, c.HorizontalGap < 0, c.Padding < 0, c.TextPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "gaps and paddings must not be negative")
	}
	return nil
}

func (c Config) layoutOptions() layout.Options {
	return layout.Options{
		BlockWidth:    c.BlockWidth,
		VerticalGap:   c.VerticalGap,
		HorizontalGap: c.HorizontalGap,
	}
}

func (c Config) canvasOptions() canvas.Options {
	return canvas.Options{
		Padding:     c.Padding,
		FontSize:    c.FontSize,
		TextPadding: c.TextPadding,
	}
}
