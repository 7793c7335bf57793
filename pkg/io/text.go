package io

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/project"
)

var (
	presetLine = regexp.MustCompile(`(?m)^\s*<([^>}]+)>\s*\{([^}]*?)\}\s*$`)
	blockLine  = regexp.MustCompile(`(?m)^\s*\[\s*((?:<[^>]+>\s+)?\s*[^|\]]+)\s*(?:\|\s*([^\]]*?))?\]\s*$`)
	refLine    = regexp.MustCompile(`(?m)^\s*\[([^\]]+)\]\s*(?:<([^>]+)>\s+)?(?:\{([^}]+)\}\s+)?([^\- ]*)-([^\[ ]*)\s*\[([^\]]+)\]\s*$`)
	valueExpr  = regexp.MustCompile(`(?s)^(?:<([^>]+)>)?\s*(.*)`)
	partExpr   = regexp.MustCompile(`(?s)^(?:\{([^}]*)\}\s*)?(.*)`)
)

// ReadText decodes the text notation from r.
func ReadText(r io.Reader) (*project.Project, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read text")
	}
	return ParseText(string(b)), nil
}

// ParseText parses the text notation. Lines that match none of the preset,
// block or ref forms are ignored, so parsing never fails.
func ParseText(text string) *project.Project {
	return &project.Project{
		Presets: parsePresets(text),
		Blocks:  parseBlocks(text),
		Refs:    parseRefs(text),
	}
}

func parsePresets(text string) project.Presets {
	var out project.Presets
	for _, m := range presetLine.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		var p project.Preset
		for _, decl := range strings.Split(m[2], ";") {
			key, value, _ := strings.Cut(decl, ":")
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			p.Set(key, strings.TrimSpace(value))
		}
		out.Merge(name, p)
	}
	return out
}

func parseBlocks(text string) []project.Block {
	var out []project.Block
	for _, m := range blockLine.FindAllStringSubmatch(text, -1) {
		head := parseValue(m[1])
		b := project.Block{Name: head.Value, Presets: head.Presets}
		if m[2] != "" {
			for _, part := range splitTopLevel(m[2], '|') {
				b.Parts = append(b.Parts, parsePart(part))
			}
		}
		out = append(out, b)
	}
	return out
}

func parseRefs(text string) []project.Ref {
	var out []project.Ref
	for _, m := range refLine.FindAllStringSubmatch(text, -1) {
		out = append(out, project.Ref{
			From:    m[1],
			To:      m[6],
			Label:   m[3],
			Start:   project.ParseMarker(m[4]),
			End:     project.ParseMarker(m[5]),
			Presets: splitPresets(m[2]),
		})
	}
	return out
}

func parsePart(text string) project.Part {
	m := partExpr.FindStringSubmatch(strings.TrimSpace(text))
	part := project.Part{Name: m[1]}
	if m[2] == "" {
		return part
	}
	for _, item := range strings.Split(m[2], ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		part.Items = append(part.Items, parseValue(item))
	}
	return part
}

func parseValue(text string) project.PresetedValue {
	m := valueExpr.FindStringSubmatch(strings.TrimSpace(text))
	return project.PresetedValue{Value: m[2], Presets: splitPresets(m[1])}
}

// splitTopLevel splits s at sep, ignoring separators inside <...> and {...}
// so item presets such as "<a|b> x" survive.
func splitTopLevel(s string, sep rune) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch {
		case r == '<' || r == '{':
			depth++
		case (r == '>' || r == '}') && depth > 0:
			depth--
		case r == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func splitPresets(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// placeholderPreset tags ref targets that have no block declaration.
const placeholderPreset = "abstract"

// WriteText encodes p in the text notation.
//
// Presets come first, then a placeholder line for every ref target that
// has no block, then blocks and refs in declaration order.
func WriteText(p *project.Project, w io.Writer) error {
	var sb strings.Builder

	for _, np := range p.Presets {
		fmt.Fprintf(&sb, "<%s> {", np.Name)
		for _, a := range np.Preset.Attrs() {
			fmt.Fprintf(&sb, " %s: %s;", a.Key, a.Value)
		}
		sb.WriteString(" }\n")
	}

	var placeholders []string
	for _, r := range p.Refs {
		if _, ok := p.Block(r.To); !ok && !slices.Contains(placeholders, r.To) {
			placeholders = append(placeholders, r.To)
		}
	}
	for _, name := range placeholders {
		fmt.Fprintf(&sb, "[<%s> %s]\n", placeholderPreset, name)
	}

	for _, b := range p.Blocks {
		sb.WriteByte('[')
		sb.WriteString(formatValue(project.PresetedValue{Value: b.Name, Presets: b.Presets}))
		for _, part := range b.Parts {
			sb.WriteString(" | ")
			if part.Name != "" {
				fmt.Fprintf(&sb, "{%s} ", part.Name)
			}
			items := make([]string, len(part.Items))
			for i, it := range part.Items {
				items[i] = formatValue(it)
			}
			sb.WriteString(strings.Join(items, "; "))
		}
		sb.WriteString("]\n")
	}

	for _, r := range p.Refs {
		fmt.Fprintf(&sb, "[%s] ", r.From)
		if len(r.Presets) > 0 {
			fmt.Fprintf(&sb, "<%s> ", strings.Join(r.Presets, "|"))
		}
		if r.Label != "" {
			fmt.Fprintf(&sb, "{%s} ", r.Label)
		}
		fmt.Fprintf(&sb, "%s-%s [%s]\n", r.Start.Code(true), r.End.Code(false), r.To)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatValue(v project.PresetedValue) string {
	if len(v.Presets) == 0 {
		return v.Value
	}
	return fmt.Sprintf("<%s> %s", strings.Join(v.Presets, "|"), v.Value)
}
