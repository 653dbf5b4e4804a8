// SPDX-License-Identifier: MIT
//
// Package build exposes metadata stamped into the binary at link time.
// Release builds pass -ldflags "-X" values for the version, commit hash and
// build timestamp; a plain `go build` falls back to development defaults so
// the binary still runs and identifies itself.
package build

import "fmt"

// Info holds the build metadata for the running binary.
type Info struct {
	Name    string
	Version string
	Commit  string
	Time    string
}

// Populated via -ldflags during release builds.
var (
	buildName    string
	buildVersion string
	buildCommit  string
	buildTime    string
)

// Get returns the build metadata, substituting development defaults for any
// value the linker did not provide.
func Get() Info {
	info := Info{
		Name:    buildName,
		Version: buildVersion,
		Commit:  buildCommit,
		Time:    buildTime,
	}
	if info.Name == "" {
		info.Name = "retro-compositor"
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}

// VersionString formats the version for --version output, including commit
// and timestamp when a release build stamped them.
func (i Info) VersionString() string {
	if i.Commit == "" {
		return i.Version
	}
	if i.Time == "" {
		return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit, i.Time)
}
