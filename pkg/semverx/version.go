// Package semverx implements the strict-triple semver parsing and
// query-time range resolution described in §3 ("Library handle") and §6
// ("Semver behavior at query time"). No semver library appears anywhere in
// the example pack (see DESIGN.md), so this is a small hand-rolled parser
// limited to exactly the grammar the spec needs.
package semverx

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed MAJOR.MINOR.PATCH triple with an optional prerelease
// tag (§3 "Library handle").
type Version struct {
	Major, Minor, Patch int
	Prerelease          string
}

// String renders the canonical "X.Y.Z" or "X.Y.Z-pre" form.
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease == "" {
		return base
	}

	return base + "-" + v.Prerelease
}

// Stable reports whether the version carries no prerelease tag.
func (v Version) Stable() bool {
	return v.Prerelease == ""
}

// Parse parses a strict "MAJOR.MINOR.PATCH[-prerelease]" triple. It rejects
// partials, wildcards, and anything else valid only at query time.
func Parse(s string) (Version, error) {
	core, pre, _ := strings.Cut(s, "-")

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q is not a MAJOR.MINOR.PATCH triple", errNotATriple, s)
	}

	nums := make([]int, 3)

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p == "" {
			return Version{}, fmt.Errorf("%w: %q is not a MAJOR.MINOR.PATCH triple", errNotATriple, s)
		}

		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Prerelease: pre}, nil
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than
// b. A version with no prerelease tag is always greater than the same
// MAJOR.MINOR.PATCH with one, matching common semver precedence.
func Compare(a, b Version) int {
	if c := compareInt(a.Major, b.Major); c != 0 {
		return c
	}

	if c := compareInt(a.Minor, b.Minor); c != 0 {
		return c
	}

	if c := compareInt(a.Patch, b.Patch); c != 0 {
		return c
	}

	switch {
	case a.Prerelease == b.Prerelease:
		return 0
	case a.Prerelease == "":
		return 1
	case b.Prerelease == "":
		return -1
	case a.Prerelease < b.Prerelease:
		return -1
	default:
		return 1
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
