package project

// =============================================================================
// Project
// =============================================================================

// Project is a complete diagram description.
type Project struct {
	Title   string  `json:"title,omitempty" toml:"title"`
	Presets Presets `json:"presets,omitempty" toml:"-"`
	Blocks  []Block `json:"blocks" toml:"blocks"`
	Refs    []Ref   `json:"refs,omitempty" toml:"refs"`
}

// Block returns the last declared block with the given name.
// Later declarations shadow earlier ones.
func (p *Project) Block(name string) (*Block, bool) {
	for i := len(p.Blocks) - 1; i >= 0; i-- {
		if p.Blocks[i].Name == name {
			return &p.Blocks[i], true
		}
	}
	return nil, false
}

// RefsFrom returns the refs whose source is name, in declaration order.
func (p *Project) RefsFrom(name string) []Ref {
	var out []Ref
	for _, r := range p.Refs {
		if r.From == name {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// Blocks
// =============================================================================

// Block is a titled box made of zero or more parts.
type Block struct {
	Name    string   `json:"name" toml:"name"`
	Presets []string `json:"presets,omitempty" toml:"presets"`
	Parts   []Part   `json:"parts,omitempty" toml:"parts"`
}

// Part is a group of items inside a block, optionally with a sub-heading.
type Part struct {
	Name  string          `json:"name,omitempty" toml:"name"`
	Items []PresetedValue `json:"items,omitempty" toml:"items"`
}

// PresetedValue is a text value with the presets applied to it.
type PresetedValue struct {
	Value   string   `json:"value" toml:"value"`
	Presets []string `json:"presets,omitempty" toml:"presets"`
}

// ItemCount returns the total number of items across all parts.
func (b *Block) ItemCount() int {
	n := 0
	for _, p := range b.Parts {
		n += len(p.Items)
	}
	return n
}

// =============================================================================
// Refs
// =============================================================================

// Ref is a directed edge between two block names.
// Either end may name a block that is never declared.
type Ref struct {
	From    string   `json:"from" toml:"from"`
	To      string   `json:"to" toml:"to"`
	Label   string   `json:"label,omitempty" toml:"label"`
	Start   Marker   `json:"start,omitempty" toml:"start"`
	End     Marker   `json:"end,omitempty" toml:"end"`
	Presets []string `json:"presets,omitempty" toml:"presets"`
}
