// Package build holds build-time information.
package build

// Version, Commit and Date default to placeholder values and are overwritten by linker flags:
//
//	-ldflags "-X go.trai.ch/kindred/internal/build.Version=v0.1.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
