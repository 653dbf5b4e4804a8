// SPDX-License-Identifier: MIT
package build

import (
	"os"
	"testing"
)

var (
	origName    string
	origVersion string
	origCommit  string
	origTime    string
)

func TestMain(m *testing.M) {
	origName = buildName
	origVersion = buildVersion
	origCommit = buildCommit
	origTime = buildTime

	exitCode := m.Run()

	buildName = origName
	buildVersion = origVersion
	buildCommit = origCommit
	buildTime = origTime

	os.Exit(exitCode)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name        string
		buildName   string
		buildVer    string
		wantName    string
		wantVersion string
	}{
		{"Unstamped Development Build", "", "", "retro-compositor", "dev"},
		{"Stamped Release Build", "retroc", "v1.2.0", "retroc", "v1.2.0"},
		{"Partially Stamped", "", "v0.3.0", "retro-compositor", "v0.3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buildName = tt.buildName
			buildVersion = tt.buildVer

			info := Get()

			if info.Name != tt.wantName {
				t.Errorf("Info.Name = %v, want %v", info.Name, tt.wantName)
			}
			if info.Version != tt.wantVersion {
				t.Errorf("Info.Version = %v, want %v", info.Version, tt.wantVersion)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"Version Only", Info{Version: "dev"}, "dev"},
		{"With Commit", Info{Version: "v1.0.0", Commit: "abcdef1"}, "v1.0.0 (abcdef1)"},
		{
			"Fully Stamped",
			Info{Version: "v1.0.0", Commit: "abcdef1", Time: "2026-08-01"},
			"v1.0.0 (abcdef1, built 2026-08-01)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.VersionString(); got != tt.want {
				t.Errorf("VersionString() = %q, want %q", got, tt.want)
			}
		})
	}
}
