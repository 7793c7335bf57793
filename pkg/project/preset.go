package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Well-known preset keys.
const (
	KeyFill   = "fill"
	KeyBorder = "border"
	KeyColor  = "color"
)

// Attr is a single key/value style attribute.
type Attr struct {
	Key   string
	Value string
}

// Preset is a named bundle of style attributes.
//
// Fill colors the background of a row, Border strokes refs and separators,
// Color colors text. Extra keeps any other attribute in declaration order.
type Preset struct {
	Fill   string
	Border string
	Color  string
	Extra  []Attr
}

// Get returns the value stored under key.
func (p Preset) Get(key string) (string, bool) {
	switch key {
	case KeyFill:
		return p.Fill, p.Fill != ""
	case KeyBorder:
		return p.Border, p.Border != ""
	case KeyColor:
		return p.Color, p.Color != ""
	}
	for _, a := range p.Extra {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Set stores value under key. An existing extra attribute keeps its position.
func (p *Preset) Set(key, value string) {
	switch key {
	case KeyFill:
		p.Fill = value
		return
	case KeyBorder:
		p.Border = value
		return
	case KeyColor:
		p.Color = value
		return
	}
	for i := range p.Extra {
		if p.Extra[i].Key == key {
			p.Extra[i].Value = value
			return
		}
	}
	p.Extra = append(p.Extra, Attr{Key: key, Value: value})
}

// Merge returns p overlaid with every attribute set in o.
func (p Preset) Merge(o Preset) Preset {
	out := p
	out.Extra = append([]Attr(nil), p.Extra...)
	for _, a := range o.Attrs() {
		out.Set(a.Key, a.Value)
	}
	return out
}

// Attrs returns every set attribute, well-known keys first.
func (p Preset) Attrs() []Attr {
	var out []Attr
	if p.Fill != "" {
		out = append(out, Attr{KeyFill, p.Fill})
	}
	if p.Border != "" {
		out = append(out, Attr{KeyBorder, p.Border})
	}
	if p.Color != "" {
		out = append(out, Attr{KeyColor, p.Color})
	}
	return append(out, p.Extra...)
}

// MarshalJSON encodes the preset as a flat object.
func (p Preset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range p.Attrs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(a.Key)
		v, _ := json.Marshal(a.Value)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat object, keeping the order of extra keys.
// Non-string scalar values are stored in their JSON text form.
func (p *Preset) UnmarshalJSON(data []byte) error {
	*p = Preset{}
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(bytes.TrimSpace(raw))
		}
		p.Set(key, s)
		return nil
	})
}

// =============================================================================
// Presets
// =============================================================================

// NamedPreset pairs a preset with its name.
type NamedPreset struct {
	Name   string
	Preset Preset
}

// Presets is an ordered preset table. JSON encodes it as an object whose key
// order matches the table order.
type Presets []NamedPreset

// Get returns the preset registered under name.
func (ps Presets) Get(name string) (Preset, bool) {
	for _, np := range ps {
		if np.Name == name {
			return np.Preset, true
		}
	}
	return Preset{}, false
}

// Put registers p under name, replacing an existing entry in place.
func (ps *Presets) Put(name string, p Preset) {
	for i := range *ps {
		if (*ps)[i].Name == name {
			(*ps)[i].Preset = p
			return
		}
	}
	*ps = append(*ps, NamedPreset{Name: name, Preset: p})
}

// Merge overlays p onto the entry registered under name, creating it if needed.
func (ps *Presets) Merge(name string, p Preset) {
	cur, _ := ps.Get(name)
	ps.Put(name, cur.Merge(p))
}

// MarshalJSON encodes the table as an ordered object.
func (ps Presets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, np := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(np.Name)
		v, err := json.Marshal(np.Preset)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping its key order.
// Repeated keys merge into one entry.
func (ps *Presets) UnmarshalJSON(data []byte) error {
	*ps = nil
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var p Preset
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("preset %q: %w", key, err)
		}
		ps.Merge(key, p)
		return nil
	})
}

// decodeObject walks a JSON object in document order.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
