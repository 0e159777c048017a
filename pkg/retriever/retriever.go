// Package retriever implements hierarchical context expansion over the
// hybrid store's search hits (§4.7): each initial hit is grown with its
// parent, nearby siblings, and children before being handed back to a tool.
package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// defaultHitBudget is the number of initial hits fetched from the store
// before expansion, independent of the caller's final limit (§4.7 step 2).
const defaultHitBudget = 10

const (
	maxPreceding = 2
	maxChildren  = 5
	maxSubsequent = 2
)

// searcher is the hybrid-search capability the retriever depends on.
type searcher interface {
	Search(ctx context.Context, lib core.Library, query string, limit int) ([]core.SearchHit, error)
}

// navigator is the hierarchical-navigation capability the retriever depends
// on, satisfied by *store.Store.
type navigator interface {
	FindParentChunk(ctx context.Context, id int64) (core.StoredDocument, bool, error)
	FindPrecedingSiblingChunks(ctx context.Context, id int64, n int) ([]core.StoredDocument, error)
	FindSubsequentSiblingChunks(ctx context.Context, id int64, n int) ([]core.StoredDocument, error)
	FindChildChunks(ctx context.Context, id int64, n int) ([]core.StoredDocument, error)
}

// store is the union of capabilities the retriever needs; *store.Store
// satisfies it structurally.
type store interface {
	searcher
	navigator
}

// Retriever composes hybrid search with hierarchical context expansion (§4.7).
type Retriever struct {
	store store
}

// New returns a Retriever backed by the given store.
func New(s store) *Retriever {
	return &Retriever{store: s}
}

// Query runs the hybrid search and expands each initial hit into an
// ExpandedResult, returning at most limit results (§4.7).
func (r *Retriever) Query(ctx context.Context, lib core.Library, query string, limit int) ([]core.ExpandedResult, error) {
	lib = lib.Fold()

	hits, err := r.store.Search(ctx, lib, query, defaultHitBudget)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]core.ExpandedResult, 0, len(hits))

	for _, hit := range hits {
		content, err := r.expand(ctx, hit)
		if err != nil {
			return nil, fmt.Errorf("expand hit %d: %w", hit.ID, err)
		}

		out = append(out, core.ExpandedResult{
			URL:     hit.URL,
			Content: content,
			Score:   hit.Score,
		})

		if len(out) == limit {
			break
		}
	}

	return out, nil
}

// expand composes the answer text for one hit: parent, up to two preceding
// siblings, the hit itself, up to five children, then up to two subsequent
// siblings — skipping any missing component without leaving dangling
// separators (§4.7 step 3).
func (r *Retriever) expand(ctx context.Context, hit core.SearchHit) (string, error) {
	var parts []string

	parent, ok, err := r.store.FindParentChunk(ctx, hit.ID)
	if err != nil {
		return "", err
	}

	if ok {
		parts = append(parts, parent.Content)
	}

	preceding, err := r.store.FindPrecedingSiblingChunks(ctx, hit.ID, maxPreceding)
	if err != nil {
		return "", err
	}

	for _, sib := range preceding {
		parts = append(parts, sib.Content)
	}

	parts = append(parts, hit.Content)

	children, err := r.store.FindChildChunks(ctx, hit.ID, maxChildren)
	if err != nil {
		return "", err
	}

	for _, child := range children {
		parts = append(parts, child.Content)
	}

	subsequent, err := r.store.FindSubsequentSiblingChunks(ctx, hit.ID, maxSubsequent)
	if err != nil {
		return "", err
	}

	for _, sib := range subsequent {
		parts = append(parts, sib.Content)
	}

	return strings.Join(parts, "\n\n"), nil
}
