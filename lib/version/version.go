// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/poolkit/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version, set manually for releases.
	Version = "0.1.0-dev"
)

// BuildInfo is the version data of the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the build information, filling in commit, dirty flag
// and build time from the toolchain's VCS stamps when ldflags did not
// set them.
func Current() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if GitCommit != "unknown" {
		return info
	}
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = shortRevision(setting.Value)
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		case "vcs.time":
			if BuildTime == "unknown" {
				info.BuildTime = setting.Value
			}
		}
	}
	return info
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	info := Current()
	dirty := ""
	if info.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", info.Version, info.Commit, dirty, info.BuildTime)
}

// Full returns Info plus the Go version and platform.
func Full() string {
	info := Current()
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", Info(), info.GoVersion, info.Platform)
}

func shortRevision(revision string) string {
	if len(revision) > 7 {
		return revision[:7]
	}
	return revision
}
