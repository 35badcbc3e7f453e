package version

import "fmt"

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Bundler is the bundler schema generated configs target.
const Bundler = "webpack 3"

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("stagepack %s (%s, %s) targeting %s", Version, Commit, BuildDate, Bundler)
}
