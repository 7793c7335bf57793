package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/blockgraph/pkg/errors"
)

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockgraph.toml")
	content := `
[diagram]
block_width = 240
font_size = 9

[cache]
redis_addr = "localhost:6379"
ttl = "1h"

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Diagram.BlockWidth = 240
	want.Diagram.FontSize = 9
	want.Cache.RedisAddr = "localhost:6379"
	want.Cache.TTL = Duration{time.Hour}
	want.Server.Addr = ":9000"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[diagram\n"},
		{"unknown key", "[diagram]\nblock_widht = 3\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
		{"zero width", "[diagram]\nblock_width = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(tt.data), &cfg)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse(%q) = %v, want INVALID_CONFIG", tt.data, err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
