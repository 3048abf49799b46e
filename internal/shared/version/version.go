// Package version reports the build version of the running binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time via -ldflags "-X github.com/boomerhub/boomerhub/internal/shared/version.Current=1.2.3".
var (
	Current = "dev"
	Commit  = "unknown"
)

// Info describes the running build.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Release bool   `json:"release"`
}

// Get returns the build info of this binary. Release is false for dev builds
// and any version string that is not valid semver.
func Get() Info {
	v := Normalize(Current)
	return Info{
		Version: v,
		Commit:  Commit,
		Release: semver.IsValid(v) && semver.Prerelease(v) == "",
	}
}

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3", "dev" -> "dev"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || version == "dev" {
		return version
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsOlder reports whether current is an older release than other. Unparseable
// versions never compare as older.
func IsOlder(current, other string) bool {
	c, o := Normalize(current), Normalize(other)
	if !semver.IsValid(c) || !semver.IsValid(o) {
		return false
	}
	return semver.Compare(c, o) < 0
}
