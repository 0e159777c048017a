package semverx

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	wildcardMajorRE      = regexp.MustCompile(`^(\d+)\.x$`)
	wildcardMajorMinorRE = regexp.MustCompile(`^(\d+)\.(\d+)\.x$`)
)

// constraint narrows candidates to a fixed major, or a fixed major+minor,
// leaving the remaining component(s) free to match the highest available.
type constraint struct {
	major    int
	minor    int
	hasMinor bool
}

func (c constraint) matches(v Version) bool {
	if v.Major != c.major {
		return false
	}

	return !c.hasMinor || v.Minor == c.minor
}

// Resolve implements the query-time resolution table (§6 "Semver behavior
// at query time"): given the versions currently stored for a library and a
// caller-supplied query string, it returns the best-matching stored version
// string. An empty stored slice or no match returns ("", false).
func Resolve(stored []string, query string) (string, bool) {
	versions := parseAll(stored)
	if len(versions) == 0 {
		return "", false
	}

	switch {
	case query == "" || strings.EqualFold(query, "latest"):
		return highestStable(versions)

	case wildcardMajorMinorRE.MatchString(query):
		m := wildcardMajorMinorRE.FindStringSubmatch(query)
		return highestMatching(versions, constraint{major: atoi(m[1]), minor: atoi(m[2]), hasMinor: true})

	case wildcardMajorRE.MatchString(query):
		m := wildcardMajorRE.FindStringSubmatch(query)
		return highestMatching(versions, constraint{major: atoi(m[1])})

	case majorMinorRE.MatchString(query):
		m := strings.SplitN(query, ".", 2)
		return highestMatching(versions, constraint{major: atoi(m[0]), minor: atoi(m[1]), hasMinor: true})

	case majorOnlyRE.MatchString(query):
		return highestMatching(versions, constraint{major: atoi(query)})

	default:
		if exact, err := Parse(query); err == nil {
			return resolveExact(versions, exact)
		}

		return "", false
	}
}

// resolveExact returns the exact version if stored, else the highest stored
// version not greater than target (§6 "exact X.Y.Z").
func resolveExact(versions []versionEntry, target Version) (string, bool) {
	var best *versionEntry

	for i := range versions {
		v := versions[i]

		if Compare(v.parsed, target) == 0 {
			return v.raw, true
		}

		if Compare(v.parsed, target) <= 0 && (best == nil || Compare(v.parsed, best.parsed) > 0) {
			best = &versions[i]
		}
	}

	if best == nil {
		return "", false
	}

	return best.raw, true
}

func highestStable(versions []versionEntry) (string, bool) {
	var best *versionEntry

	for i := range versions {
		v := versions[i]
		if !v.parsed.Stable() {
			continue
		}

		if best == nil || Compare(v.parsed, best.parsed) > 0 {
			best = &versions[i]
		}
	}

	if best != nil {
		return best.raw, true
	}

	// No stable release exists; fall back to the highest overall.
	return highestMatching(versions, constraint{major: -1})
}

func highestMatching(versions []versionEntry, c constraint) (string, bool) {
	var best *versionEntry

	for i := range versions {
		v := versions[i]

		if c.major >= 0 && !c.matches(v.parsed) {
			continue
		}

		if best == nil || Compare(v.parsed, best.parsed) > 0 {
			best = &versions[i]
		}
	}

	if best == nil {
		return "", false
	}

	return best.raw, true
}

type versionEntry struct {
	raw    string
	parsed Version
}

// parseAll parses stored version strings, silently skipping any that fail
// to parse (ingest already enforces strict triples, so this only guards
// against unversioned/corrupt rows slipping into a version list).
func parseAll(stored []string) []versionEntry {
	out := make([]versionEntry, 0, len(stored))

	for _, s := range stored {
		v, err := Parse(s)
		if err != nil {
			continue
		}

		out = append(out, versionEntry{raw: s, parsed: v})
	}

	sort.Slice(out, func(i, j int) bool { return Compare(out[i].parsed, out[j].parsed) < 0 })

	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
