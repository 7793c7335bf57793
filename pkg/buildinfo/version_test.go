package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWithModule(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}
	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			name: "unstamped",
			in:   Info{Version: devVersion, Commit: noCommit, Date: unknownDate},
			want: Info{Version: "v0.4.0", Commit: "abc123", Date: "2026-01-02T03:04:05Z"},
		},
		{
			name: "stamped",
			in:   Info{Version: "v1.0.0", Commit: "fff", Date: "today"},
			want: Info{Version: "v1.0.0", Commit: "fff", Date: "today"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, withModule(tt.in, bi)); diff != "" {
				t.Errorf("withModule mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithModuleDevelBuild(t *testing.T) {
	bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := withModule(Info{Version: devVersion}, bi)
	if got.Version != devVersion {
		t.Errorf("Version = %q, want %q", got.Version, devVersion)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(tmpl, "\ngo: go") {
		t.Errorf("Template() missing go version: %q", tmpl)
	}
}
