package cache

import "strings"

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey returns the key of one output format rendered from the
	// project identified by projectHash.
	ArtifactKey(projectHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes the bytes of an artifact.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	BlockWidth    float64 `json:"block_width"`
	VerticalGap   float64 `json:"vertical_gap"`
	HorizontalGap float64 `json:"horizontal_gap"`
	Padding       float64 `json:"padding"`
	FontSize      float64 `json:"font_size"`
	TextPadding   float64 `json:"text_padding"`
	Highlight     bool    `json:"highlight,omitempty"`
}

// DefaultKeyer produces keys of the form "artifact:<format>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(projectHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+strings.ToLower(opts.Format), projectHash, opts)
}
