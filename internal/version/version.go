package version

import (
	"fmt"
	"runtime"
)

// Populated via -ldflags at build time; zero values mean a dev build.
var (
	App       = "SessionGate"
	Version   string
	GitCommit string
	BuildTime string
)

// String returns the one-line version banner
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return fmt.Sprintf("%s version %s", App, v)
}

// PrintVersion prints the version information
func PrintVersion() {
	fmt.Println(String())
	if GitCommit != "" {
		fmt.Printf("Git commit: %s\n", shortCommit())
	}
	if BuildTime != "" {
		fmt.Printf("Build time: %s\n", BuildTime)
	}
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("Built for: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
