// Package repos resolves repository names and branch comparison specs.
package repos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRepositoryNotFound is returned when a short repository name matches
// nothing in the configured list.
var ErrRepositoryNotFound = errors.New("repository not found")

// Resolve converts a short repository name into its fully qualified
// owner/name form using the configured repository list. Input that already
// contains a slash is returned unchanged; otherwise the first repository
// whose name after the slash matches wins.
func Resolve(input string, known []string) (string, error) {
	if strings.Contains(input, "/") {
		return input, nil
	}

	for _, full := range known {
		if _, name, ok := strings.Cut(full, "/"); ok && name == input {
			return full, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrRepositoryNotFound, input)
}

// ParseCompareSpec splits a "base...head" token into its branches, accepting
// ".." as a fallback separator. A token containing neither separator leaves
// the supplied defaults in force.
func ParseCompareSpec(spec, defaultBase, defaultHead string) (base, head string) {
	if b, h, ok := strings.Cut(spec, "..."); ok {
		return b, h
	}
	if b, h, ok := strings.Cut(spec, ".."); ok {
		return b, h
	}
	return defaultBase, defaultHead
}
