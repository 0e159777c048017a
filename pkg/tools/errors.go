package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// LibraryNotFoundError wraps core.ErrLibraryNotFound with fuzzy-matched
// alternatives drawn from the libraries actually present in the store.
type LibraryNotFoundError struct {
	Library     string
	Suggestions []string
}

func (e *LibraryNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("library %q not found", e.Library)
	}

	return fmt.Sprintf("library %q not found, did you mean: %s?", e.Library, strings.Join(e.Suggestions, ", "))
}

func (e *LibraryNotFoundError) Unwrap() error {
	return core.ErrLibraryNotFound
}

// findLibrary resolves a library name (case-folded) against the stored
// catalog, suggesting near-matches via fuzzy search when it isn't found.
func (t *Tools) findLibrary(ctx context.Context, name string) (core.LibraryInfo, error) {
	libs, err := t.store.ListLibraries(ctx)
	if err != nil {
		return core.LibraryInfo{}, fmt.Errorf("list libraries: %w", err)
	}

	folded := strings.ToLower(name)
	for _, lib := range libs {
		if lib.Library == folded {
			return lib, nil
		}
	}

	names := make([]string, len(libs))
	for i, lib := range libs {
		names[i] = lib.Library
	}

	return core.LibraryInfo{}, &LibraryNotFoundError{Library: name, Suggestions: suggestLibraries(folded, names)}
}

func suggestLibraries(query string, candidates []string) []string {
	matches := fuzzy.Find(query, candidates)
	sort.Stable(matches)

	n := len(matches)
	if n > maxSuggestions {
		n = maxSuggestions
	}

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[matches[i].Index]
	}

	return out
}
