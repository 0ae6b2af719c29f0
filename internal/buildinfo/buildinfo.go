// Package buildinfo holds version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/modoterra/headless/internal/buildinfo.Version=v0.3.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
