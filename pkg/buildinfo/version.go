// Package buildinfo reports which blockgraph build is running.
//
// Release builds stamp the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/blockgraph/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/blockgraph/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/blockgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with "go install" carry no stamp. [Get] then falls back to
// the module version and VCS settings the toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Unstamped values.
const (
	devVersion  = "dev"
	noCommit    = "none"
	unknownDate = "unknown"
)

// Stamped through ldflags at release time.
var (
	Version = devVersion
	Commit  = noCommit
	Date    = unknownDate
)

// Info describes one build. It is served by the HTTP health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get returns the running build. Stamped values win over embedded ones.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = withModule(info, bi)
	}
	return info
}

func withModule(info Info, bi *debug.BuildInfo) Info {
	if info.Version == devVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == noCommit:
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == unknownDate:
			info.Date = s.Value
		}
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("version %s\ncommit: %s\nbuilt: %s\ngo: %s", i.Version, i.Commit, i.Date, i.GoVersion)
}

// Template returns the cobra version template for the running build.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
