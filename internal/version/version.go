package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/edyy78/uireplay/internal/version.Version=..."
var (
	Name      = "uireplay"
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Resolved returns Version, falling back to the module version recorded by
// `go install module@version` when no version was linked in
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

func String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, Resolved(), Commit, BuildDate)
}
