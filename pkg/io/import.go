package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/project"
)

// Format names an input encoding.
type Format string

// Supported input encodings.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// DetectFormat picks the encoding for path from its extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	return FormatText
}

// Read decodes a project from r in the given format.
func Read(r io.Reader, f Format) (*project.Project, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatText:
		return ReadText(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", f)
}

// Import opens path and decodes it according to its extension.
func Import(path string) (*project.Project, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, DetectFormat(path))
}

// ReadJSON decodes a JSON project from r.
//
// The input is an object with "blocks" and optional "title", "presets" and
// "refs". Preset order is kept as written. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*project.Project, error) {
	var p project.Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "decode json")
	}
	return &p, nil
}

// ImportJSON reads a JSON file at path and returns the decoded project.
func ImportJSON(path string) (*project.Project, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}
