package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with:
// -ldflags "-X github.com/samqfs/samqfsui/internal/version.Version=vX.Y.Z"
var Version = "dev"

// APIVersion is bumped on incompatible changes to the /api/v1 wire types.
const APIVersion = 1

func Current() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	return v
}

// Canonical returns v as a semver string with a leading "v", or "" when v is
// not a release version.
func Canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "dev" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// Compatible reports whether a client at version client can talk to a server
// at version server. Development builds are compatible with everything;
// release builds must share the major version and the server must not be
// older than the client's minor.
func Compatible(client, server string) bool {
	c, s := Canonical(client), Canonical(server)
	if c == "" || s == "" {
		return true
	}
	if semver.Major(c) != semver.Major(s) {
		return false
	}
	return semver.Compare(semver.MajorMinor(s), semver.MajorMinor(c)) >= 0
}
