// Package version provides application version and build info.
//
//nolint:revive
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	// Version is the current version of the application.
	// It can be overridden by ldflags at build time.
	Version = "dev"
	// CommitHash is the git commit hash at build time.
	// It can be overridden by ldflags at build time.
	CommitHash = ""
	// BuildTime is the time when the application was built.
	// It can be overridden by ldflags at build time.
	BuildTime = ""
)

// Info is the build information reported by the CLI and the HTTP API.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash,omitempty"`
	BuildTime  string `json:"build_time,omitempty"`
	GoVersion  string `json:"go_version"`
}

var vcsOnce sync.Once

// Get returns the build information, falling back to VCS settings embedded by the Go toolchain.
func Get() Info {
	vcsOnce.Do(func() {
		if CommitHash != "" {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				CommitHash = setting.Value
			case "vcs.time":
				if BuildTime == "" {
					BuildTime = setting.Value
				}
			}
		}
	})
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
	}
}

// String formats the version with a short commit hash, e.g. "v1.2.0 (abc1234)".
func (i Info) String() string {
	if i.CommitHash == "" {
		return i.Version
	}
	shortHash := i.CommitHash
	if len(shortHash) > 7 {
		shortHash = shortHash[:7]
	}
	return fmt.Sprintf("%s (%s)", i.Version, shortHash)
}

// GetInfo returns the formatted version string.
func GetInfo() string {
	return Get().String()
}
