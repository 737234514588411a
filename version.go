package aasa

import (
	"strings"

	"golang.org/x/mod/semver"
)

var (
	Version    = "0.0.0"
	Prerelease = ""
	Build      = ""
)

// SemVer returns the version of aasa as set at
// build time with -ldflags "-X github.com/frantjc/aasa.Version=...".
func SemVer() string {
	v := "v" + strings.TrimPrefix(Version, "v")

	if Prerelease != "" {
		v += "-" + Prerelease
	}

	if Build != "" {
		v += "+" + Build
	}

	if !semver.IsValid(v) {
		return "v0.0.0-unknown"
	}

	return v
}
