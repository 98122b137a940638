package version

import "runtime/debug"

var (
	// Build-time parameters set via -ldflags
	Version = "unknown"
)

// A user may install ward using `go install` without -ldflags, in which case
// the version above is unset. As a workaround we use the embedded build
// version that *is* set when using `go install` (and is only set for `go
// install` and not for `go build`).
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	mainVersion := info.Main.Version
	if mainVersion == "" || mainVersion == "(devel)" {
		// bin not built using `go install`
		return
	}
	Version = mainVersion
}
