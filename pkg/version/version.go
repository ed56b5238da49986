// Package version provides the library version and the User-Agent string
// sent to devices.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Current is the version of this library.
const Current = "1.0"

// Product is the User-Agent product token.
const Product = "purifier-go"

// Version is a parsed "major.minor" version.
type Version struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Version{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// CurrentVersion returns Current parsed.
func CurrentVersion() Version {
	v, err := Parse(Current)
	if err != nil {
		panic(err)
	}
	return v
}

// UserAgent returns the User-Agent header value, e.g.
// "purifier-go/1.0 (linux; go1.25.5)".
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s; %s)", Product, Current, runtime.GOOS, runtime.Version())
}
