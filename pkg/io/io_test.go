package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/project"
)

const sampleJSON = `{
  "title": "shop",
  "presets": {
    "z-last": {"fill": "orange"},
    "a-first": {"color": "blue", "stroke-dasharray": "4"}
  },
  "blocks": [
    {"name": "users", "presets": ["z-last"], "parts": [
      {"name": "fields", "items": [{"value": "id"}, {"value": "email", "presets": ["-"]}]}
    ]},
    {"name": "orders"}
  ],
  "refs": [
    {"from": "users", "to": "orders", "label": "places", "start": "*", "end": "triangle"}
  ]
}`

func sampleProject() *project.Project {
	var z, a project.Preset
	z.Set("fill", "orange")
	a.Set("color", "blue")
	a.Set("stroke-dasharray", "4")
	return &project.Project{
		Title:   "shop",
		Presets: project.Presets{{Name: "z-last", Preset: z}, {Name: "a-first", Preset: a}},
		Blocks: []project.Block{
			{Name: "users", Presets: []string{"z-last"}, Parts: []project.Part{
				{Name: "fields", Items: []project.PresetedValue{
					{Value: "id"},
					{Value: "email", Presets: []string{"-"}},
				}},
			}},
			{Name: "orders"},
		},
		Refs: []project.Ref{
			{From: "users", To: "orders", Label: "places", Start: project.MarkerDiamond, End: project.MarkerTriangle},
		},
	}
}

func TestReadJSON(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if diff := cmp.Diff(sampleProject(), got); diff != "" {
		t.Errorf("ReadJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"blocks": [`))
	if !errors.Is(err, errors.ErrCodeInvalidProject) {
		t.Errorf("ReadJSON(truncated) = %v, want INVALID_PROJECT", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleProject(), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if diff := cmp.Diff(sampleProject(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.json")
	if err := ExportJSON(sampleProject(), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if diff := cmp.Diff(sampleProject(), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

const sampleTOML = `
title = "shop"

[presets.z-last]
fill = "orange"

[presets.a-first]
color = "blue"
stroke-dasharray = 4

[[blocks]]
name = "users"
presets = ["z-last"]

[[blocks.parts]]
name = "fields"
items = [{ value = "id" }, { value = "email", presets = ["-"] }]

[[blocks]]
name = "orders"

[[refs]]
from = "users"
to = "orders"
label = "places"
start = "*"
end = "triangle"
`

func TestReadTOML(t *testing.T) {
	got, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if diff := cmp.Diff(sampleProject(), got); diff != "" {
		t.Errorf("ReadTOML mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTOMLEmptyPreset(t *testing.T) {
	got, err := ReadTOML(strings.NewReader("[presets.none]\n\n[presets.one]\nfill = \"red\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, np := range got.Presets {
		names = append(names, np.Name)
	}
	if diff := cmp.Diff([]string{"none", "one"}, names); diff != "" {
		t.Errorf("preset order (-want +got):\n%s", diff)
	}
}

func TestReadTOMLInvalid(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("title = "))
	if !errors.Is(err, errors.ErrCodeInvalidProject) {
		t.Errorf("ReadTOML(broken) = %v, want INVALID_PROJECT", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.json":       FormatJSON,
		"A.JSON":       FormatJSON,
		"dir/b.toml":   FormatTOML,
		"c.bg":         FormatText,
		"no-extension": FormatText,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"shop.json": sampleJSON,
		"shop.toml": sampleTOML,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if diff := cmp.Diff(sampleProject(), got); diff != "" {
			t.Errorf("Import(%s) mismatch (-want +got):\n%s", name, diff)
		}
	}

	path := filepath.Join(dir, "shop.bg")
	if err := os.WriteFile(path, []byte(sampleText), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import(text): %v", err)
	}
	if len(got.Blocks) != 3 || len(got.Refs) != 2 {
		t.Errorf("Import(text) = %d blocks, %d refs", len(got.Blocks), len(got.Refs))
	}
}

func TestImportExamples(t *testing.T) {
	want, err := Import("../../examples/shop.json")
	if err != nil {
		t.Fatalf("Import(shop.json): %v", err)
	}
	if len(want.Blocks) != 3 || len(want.Refs) != 3 {
		t.Fatalf("shop.json = %d blocks, %d refs", len(want.Blocks), len(want.Refs))
	}
	for _, name := range []string{"shop.toml", "shop.txt"} {
		got, err := Import(filepath.Join("../../examples", name))
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s differs from shop.json (-json +%s):\n%s", name, name, diff)
		}
	}
}

func TestImportMissing(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), Format("yaml"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Read(yaml) = %v, want INVALID_FORMAT", err)
	}
}
