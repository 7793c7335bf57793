// Package style resolves preset names into concrete drawing styles.
//
// A [Resolver] holds an ordered preset table. [Resolver.Resolve] folds a list
// of preset names over the defaults (white fill, black border, black text) and
// returns one [Style] per element kind: row background, text and line.
//
// Only three keys affect drawing directly: fill (row background), color
// (text fill) and border (line stroke). Any other attribute is carried in
// [Resolved.Extra] and applied to row backgrounds and lines as an extra CSS
// declaration.
package style

import (
	"strings"

	"github.com/matzehuels/blockgraph/pkg/project"
)

// Decl is a single CSS declaration.
type Decl struct {
	Prop  string
	Value string
}

// Style is an ordered list of CSS declarations. Setting an existing property
// replaces its value in place, so rendering is stable across runs.
type Style []Decl

// Of builds a style from alternating property/value pairs.
func Of(kv ...string) Style {
	var s Style
	for i := 0; i+1 < len(kv); i += 2 {
		s = s.Set(kv[i], kv[i+1])
	}
	return s
}

// Get returns the value of prop.
func (s Style) Get(prop string) (string, bool) {
	for _, d := range s {
		if d.Prop == prop {
			return d.Value, true
		}
	}
	return "", false
}

// Set returns a copy of s with prop set to value.
func (s Style) Set(prop, value string) Style {
	out := make(Style, len(s), len(s)+1)
	copy(out, s)
	for i := range out {
		if out[i].Prop == prop {
			out[i].Value = value
			return out
		}
	}
	return append(out, Decl{Prop: prop, Value: value})
}

// With returns s overlaid with every declaration of o.
func (s Style) With(o Style) Style {
	out := s
	for _, d := range o {
		out = out.Set(d.Prop, d.Value)
	}
	return out
}

// String renders the style as an inline CSS value ("a:b;c:d").
func (s Style) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Prop + ":" + d.Value
	}
	return strings.Join(parts, ";")
}

// Resolved holds the styles derived from a list of preset names.
type Resolved struct {
	Rect  Style
	Text  Style
	Line  Style
	Extra []project.Attr
}

// Default element styles before any preset applies.
var (
	DefaultRect = Of("fill", "#ffffff", "stroke", "#000000")
	DefaultText = Of("fill", "#000000", "stroke", "none")
	DefaultLine = Of("fill", "none", "stroke", "#000000")
)

// BuiltinPresets are registered before any project preset.
func BuiltinPresets() project.Presets {
	return project.Presets{
		{Name: "+", Preset: project.Preset{Fill: "green", Color: "white", Border: "green"}},
		{Name: "-", Preset: project.Preset{Fill: "red", Border: "red"}},
		{Name: "def", Preset: project.Preset{Fill: "lightgrey"}},
	}
}

// Resolver maps preset names to styles.
// A Resolver is not safe for concurrent mutation; build one per render.
type Resolver struct {
	presets project.Presets
}

// NewResolver returns a resolver seeded with presets, in order.
func NewResolver(presets ...project.Presets) *Resolver {
	r := &Resolver{}
	for _, ps := range presets {
		for _, np := range ps {
			r.AddPreset(np.Name, np.Preset)
		}
	}
	return r
}

// AddPreset registers p under name. Re-registering a name overwrites it.
func (r *Resolver) AddPreset(name string, p project.Preset) {
	r.presets.Put(name, p)
}

// Presets returns the registered table in registration order.
func (r *Resolver) Presets() project.Presets {
	return append(project.Presets(nil), r.presets...)
}

// Merge folds names over an empty preset. Later names override earlier ones
// key by key. Unknown names are skipped.
func (r *Resolver) Merge(names []string) project.Preset {
	var merged project.Preset
	for _, name := range names {
		if p, ok := r.presets.Get(name); ok {
			merged = merged.Merge(p)
		}
	}
	return merged
}

// Resolve returns the element styles for names.
func (r *Resolver) Resolve(names []string) Resolved {
	p := r.Merge(names)
	res := Resolved{
		Rect:  DefaultRect,
		Text:  DefaultText,
		Line:  DefaultLine,
		Extra: p.Extra,
	}
	if p.Fill != "" {
		res.Rect = res.Rect.Set("fill", p.Fill)
	}
	if p.Color != "" {
		res.Text = res.Text.Set("fill", p.Color)
	}
	if p.Border != "" {
		res.Line = res.Line.Set("stroke", p.Border)
	}
	for _, a := range p.Extra {
		res.Rect = res.Rect.Set(a.Key, a.Value)
		res.Line = res.Line.Set(a.Key, a.Value)
	}
	return res
}
