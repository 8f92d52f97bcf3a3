// Package version implements semantic version parsing and bumping for
// release tags.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedVersion is returned when a tag is not three dot-separated
// non-negative integers with an optional leading "v".
var ErrMalformedVersion = errors.New("malformed version")

// Kind selects which component of a version a bump increments.
type Kind string

const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// Version is a parsed semantic version. The "v" prefix, when present in the
// input, is kept and reproduced by String.
type Version struct {
	Major int
	Minor int
	Patch int

	prefix string
}

// Parse parses a version string such as "1.2.3" or "v1.2.3".
func Parse(s string) (Version, error) {
	v := Version{}
	rest := s
	if strings.HasPrefix(rest, "v") {
		v.prefix = "v"
		rest = rest[1:]
	}

	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}

	components := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		// ParseUint rejects signs, so "1.-2.3" fails here.
		n, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
		}
		*components[i] = int(n)
	}

	return v, nil
}

// Bump returns the next version for the requested kind. The result is always
// strictly greater than the receiver.
func (v Version) Bump(kind Kind) Version {
	next := v
	switch kind {
	case Major:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case Minor:
		next.Minor++
		next.Patch = 0
	default:
		next.Patch++
	}
	return next
}

func (v Version) String() string {
	return fmt.Sprintf("%s%d.%d.%d", v.prefix, v.Major, v.Minor, v.Patch)
}
