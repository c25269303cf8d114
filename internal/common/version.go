package common

import (
	"fmt"
	"runtime"
)

// Version information (set via -ldflags during build)
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetFullVersion returns version with build info
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// UserAgent identifies the CLI to the API.
func UserAgent() string {
	return fmt.Sprintf("sgai-cli/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
