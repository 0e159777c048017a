package core

import "strings"

// Library identifies a documentation source by name and version. Version is
// either empty (meaning "unversioned") or a strict semver triple, optionally
// carrying a prerelease tag. Comparisons are always case-folded.
type Library struct {
	Name    string
	Version string
}

// Fold returns a copy of the handle with both fields lower-cased, the form
// used for every store comparison and index lookup.
func (l Library) Fold() Library {
	return Library{
		Name:    strings.ToLower(l.Name),
		Version: strings.ToLower(l.Version),
	}
}

// Unversioned reports whether the handle has no version component.
func (l Library) Unversioned() bool {
	return l.Version == ""
}
