package io

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/project"
)

// tomlProject mirrors project.Project with presets as plain tables; their
// order is recovered from the decoder metadata.
type tomlProject struct {
	project.Project
	Presets map[string]map[string]any `toml:"presets"`
}

// ReadTOML decodes a TOML project from r.
//
//	title = "shop"
//
//	[presets.hot]
//	fill = "orange"
//
//	[[blocks]]
//	name = "users"
//	presets = ["hot"]
//
//	[[blocks.parts]]
//	name = "fields"
//	items = [{ value = "id" }, { value = "email", presets = ["-"] }]
//
//	[[refs]]
//	from = "users"
//	to = "orders"
//	end = ">"
func ReadTOML(r io.Reader) (*project.Project, error) {
	var raw tomlProject
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "decode toml")
	}

	p := raw.Project
	p.Presets = nil
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "presets" {
			continue
		}
		name := key[1]
		switch len(key) {
		case 2:
			if _, ok := p.Presets.Get(name); !ok {
				p.Presets.Put(name, project.Preset{})
			}
		case 3:
			v, ok := raw.Presets[name][key[2]]
			if !ok {
				continue
			}
			var pre project.Preset
			pre.Set(key[2], tomlString(v))
			p.Presets.Merge(name, pre)
		}
	}
	return &p, nil
}

func tomlString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
