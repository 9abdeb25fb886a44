// Package version reports the build version of the file-manager binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/zoro11031/file-manager/pkg/version.Version=..."
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns formatted version information. Without ldflags the commit and
// date come from the VCS stamp embedded by the go tool, when present.
func Info() string {
	commit, date := GitCommit, BuildDate
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, date = fromBuildSettings(info.Settings, commit, date)
	}
	return fmt.Sprintf("file-manager version %s (commit: %s, built: %s)", Version, commit, date)
}

func fromBuildSettings(settings []debug.BuildSetting, commit, date string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && len(s.Value) >= 7 {
				commit = s.Value[:7]
			}
		case "vcs.time":
			if date == "unknown" {
				date = s.Value
			}
		}
	}
	return commit, date
}
