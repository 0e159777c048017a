package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/semverx"
)

const defaultSearchLimit = 5

// SearchRequest is the input to the Search tool.
type SearchRequest struct {
	Library    string
	Version    string
	Query      string
	Limit      int
	ExactMatch bool
}

// SearchResponse is the output of the Search tool.
type SearchResponse struct {
	Library     string
	Version     string
	Unversioned bool
	Results     []core.ExpandedResult
}

// Search validates the library, resolves the requested version against the
// stored versions (§6), and queries the retriever for matching chunks.
func (t *Tools) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	if req.ExactMatch && (req.Version == "" || strings.EqualFold(req.Version, "latest")) {
		return SearchResponse{}, fmt.Errorf("%w: exact match requires a specific version", core.ErrVersionNotFound)
	}

	lib, err := t.findLibrary(ctx, req.Library)
	if err != nil {
		return SearchResponse{}, err
	}

	resolved, ok := semverx.Resolve(lib.Versions, req.Version)
	if !ok {
		if lib.Unversioned && req.Version == "" {
			resolved = ""
		} else {
			return SearchResponse{}, fmt.Errorf("%w: %s has no version matching %q", core.ErrVersionNotFound, lib.Library, req.Version)
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results, err := t.retriever.Query(ctx, core.Library{Name: lib.Library, Version: resolved}, req.Query, limit)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("query: %w", err)
	}

	return SearchResponse{
		Library:     lib.Library,
		Version:     resolved,
		Unversioned: resolved == "",
		Results:     results,
	}, nil
}
