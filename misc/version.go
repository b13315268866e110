// Package misc holds build time information injected by the linker.
package misc

import (
	"runtime/debug"
)

// set with -ldflags "-X hdmerge/misc.version=... -X hdmerge/misc.gitHash=..."
var (
	appName = "hdmerge"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit the binary was built from. When not set by the
// linker VCS information recorded by the go tool is used.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
