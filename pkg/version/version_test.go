package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBump(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		want string
	}{
		{"1.2.3", Patch, "1.2.4"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Major, "2.0.0"},
		{"v1.2.3", Patch, "v1.2.4"},
		{"v1.2.3", Major, "v2.0.0"},
		{"0.0.0", Minor, "0.1.0"},
		{"0.0.0", Patch, "0.0.1"},
		{"9.9.9", Minor, "9.10.0"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s_%s", tc.in, tc.kind), func(t *testing.T) {
			v, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Bump(tc.kind).String())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	malformed := []string{
		"",
		"v",
		"1",
		"1.2",
		"1.2.3.4",
		"a.b.c",
		"1.-2.3",
		"1.2.x",
		"1..3",
		"version-1.2.3",
	}

	for _, in := range malformed {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrMalformedVersion, "input %q", in)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, in := range []string{"0.0.0", "1.2.3", "v10.20.30"} {
		v, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, v.String())
	}
}

func TestBumpIsStrictlyGreater(t *testing.T) {
	versions := []Version{
		{},
		{Major: 1, Minor: 2, Patch: 3},
		{Major: 9, Patch: 41},
		{Minor: 99, Patch: 99},
	}

	less := func(a, b Version) bool {
		if a.Major != b.Major {
			return a.Major < b.Major
		}
		if a.Minor != b.Minor {
			return a.Minor < b.Minor
		}
		return a.Patch < b.Patch
	}

	for _, v := range versions {
		for _, kind := range []Kind{Major, Minor, Patch} {
			next := v.Bump(kind)
			assert.True(t, less(v, next), "%s bump of %s produced %s", kind, v, next)
		}
	}
}
