package semverx

import (
	"fmt"
	"regexp"
)

var (
	majorOnlyRE  = regexp.MustCompile(`^\d+$`)
	majorMinorRE = regexp.MustCompile(`^\d+\.\d+$`)
)

// CoerceTriple coerces a user-supplied ingest version to a strict
// MAJOR.MINOR.PATCH triple: "1" -> "1.0.0", "1.2" -> "1.2.0", a full triple
// passes through unchanged, and prerelease tags are preserved. Wildcards,
// ranges, and "latest" are valid only at query time and are rejected here
// (§3 "Library handle").
func CoerceTriple(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	switch {
	case majorOnlyRE.MatchString(input):
		input += ".0.0"
	case majorMinorRE.MatchString(input):
		input += ".0"
	}

	v, err := Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errNotATriple, input)
	}

	return v.String(), nil
}
