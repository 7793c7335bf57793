package project

import "strings"

// Marker is a glyph drawn at the end of a ref.
type Marker string

// Supported marker glyphs. The zero value draws nothing.
const (
	MarkerNone          Marker = ""
	MarkerTriangle      Marker = "triangle"
	MarkerTriangleEmpty Marker = "triangle-empty"
	MarkerDiamond       Marker = "diamond"
	MarkerDiamondEmpty  Marker = "diamond-empty"
	MarkerCircle        Marker = "circle"
	MarkerCircleEmpty   Marker = "circle-empty"
)

// Markers lists every drawable marker in definition order.
var Markers = []Marker{
	MarkerTriangle,
	MarkerTriangleEmpty,
	MarkerDiamond,
	MarkerDiamondEmpty,
	MarkerCircle,
	MarkerCircleEmpty,
}

var markerCodes = map[string]Marker{
	">":  MarkerTriangle,
	"<":  MarkerTriangle,
	"|>": MarkerTriangleEmpty,
	"<|": MarkerTriangleEmpty,
	"*":  MarkerDiamond,
	"+":  MarkerDiamondEmpty,
	"@":  MarkerCircle,
	"o":  MarkerCircleEmpty,
}

// ParseMarker maps a long marker name or a short code to a Marker.
// Unknown input yields MarkerNone.
func ParseMarker(s string) Marker {
	s = strings.TrimSpace(s)
	if m, ok := markerCodes[s]; ok {
		return m
	}
	m := Marker(strings.ToLower(s))
	if m.Valid() {
		return m
	}
	return MarkerNone
}

// Valid reports whether m is a drawable marker.
func (m Marker) Valid() bool {
	for _, k := range Markers {
		if k == m {
			return true
		}
	}
	return false
}

// Code returns the short code of m as used in the text notation.
// from selects the variant written on the source side of an arrow.
func (m Marker) Code(from bool) string {
	switch m {
	case MarkerTriangle:
		if from {
			return "<"
		}
		return ">"
	case MarkerTriangleEmpty:
		if from {
			return "<|"
		}
		return "|>"
	case MarkerDiamond:
		return "*"
	case MarkerDiamondEmpty:
		return "+"
	case MarkerCircle:
		return "@"
	case MarkerCircleEmpty:
		return "o"
	}
	return ""
}

// UnmarshalText accepts long names and short codes.
func (m *Marker) UnmarshalText(b []byte) error {
	*m = ParseMarker(string(b))
	return nil
}
