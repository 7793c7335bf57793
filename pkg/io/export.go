package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/blockgraph/pkg/project"
)

// WriteJSON encodes p as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(p *project.Project, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes p as JSON to the file at path.
func ExportJSON(p *project.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(p, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
