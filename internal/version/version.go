// Package version exposes the build version stamped in via ldflags:
//
//	go build -ldflags "-X github.com/deckwright/deckwright/internal/version.Version=v1.2.3"
package version

// Version defaults to "dev" for untagged builds.
var Version = "dev"
