// Package buildinfo carries release metadata stamped in by the linker, e.g.
//
//	go build -ldflags "-X github.com/tally-dev/tally/internal/buildinfo.Version=v0.3.0" ./cmd/tally
package buildinfo

// Release metadata reported by `tally --version`.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
