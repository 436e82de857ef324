package common

import (
	"fmt"
	"runtime/debug"
)

// Version and GitCommit can be set via ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// GetVersion returns the build version, with a short commit suffix when the
// commit is known. Without ldflags it falls back to the module build info.
func GetVersion() (string, bool) {
	version, commit := Version, GitCommit

	if version == "dev" {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return "", false
		}

		version, commit = info.Main.Version, ""
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				commit = setting.Value
			}
		}
	}

	if len(commit) > 8 {
		commit = commit[:8]
	}
	if len(commit) == 0 || commit == "unknown" {
		return version, true
	}
	return fmt.Sprintf("%s (git: %s)", version, commit), true
}
