package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// rrfK is the Reciprocal Rank Fusion rank-dampening constant (§4.6 "Hybrid search").
const rrfK = 60

// ftsColumnWeights biases BM25 toward content and url over title/path, in
// column declaration order (content, title, url, path) (§4.6 "Hybrid search").
const ftsColumnWeights = "10, 1, 5, 1"

// Search runs the hybrid vector+lexical query for (library, version) and
// returns the top-limit rows fused by Reciprocal Rank Fusion (§4.6 "Hybrid
// search").
func (s *Store) Search(ctx context.Context, lib core.Library, query string, limit int) ([]core.SearchHit, error) {
	lib = lib.Fold()

	if s.embedder == nil {
		return nil, fmt.Errorf("%w: search requires an embedder", core.ErrStore)
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	fitted, err := s.dim.fit(queryVec)
	if err != nil {
		return nil, err
	}

	vecRanks, err := s.vectorRanks(ctx, lib, fitted, limit)
	if err != nil {
		return nil, err
	}

	lexRanks, err := s.lexicalRanks(ctx, lib, query, limit)
	if err != nil {
		return nil, err
	}

	ids, scores := fuseRanks(vecRanks, lexRanks)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	return s.hydrate(ctx, ids, scores)
}

// vectorRanks returns rowids in ascending-distance order for (library,
// version), 1-based rank position in the returned slice.
func (s *Store) vectorRanks(ctx context.Context, lib core.Library, queryVec []float32, limit int) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid FROM documents_vec
		 WHERE embedding MATCH ? AND k = ? AND library = ? AND version = ?
		 ORDER BY distance`,
		encodeEmbedding(queryVec), limit, lib.Name, lib.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: vector query: %w", core.ErrStore, err)
	}
	defer rows.Close()

	var out []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan vector row: %w", core.ErrStore, err)
		}

		out = append(out, id)
	}

	return out, rows.Err()
}

// lexicalRanks returns rowids in BM25 relevance order for (library, version).
// The query is wrapped in a double-quoted phrase, with internal quotes
// doubled, so any FTS operator syntax in the user's input is treated as
// literal text (§4.6 "The FTS query is fed ...").
func (s *Store) lexicalRanks(ctx context.Context, lib core.Library, query string, limit int) ([]int64, error) {
	phrase := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id FROM documents_fts f
		 JOIN documents d ON d.id = f.rowid
		 WHERE f MATCH ? AND lower(d.library) = ? AND lower(d.version) = ?
		 ORDER BY bm25(f, `+ftsColumnWeights+`)
		 LIMIT ?`,
		phrase, lib.Name, lib.Version, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: lexical query: %w", core.ErrStore, err)
	}
	defer rows.Close()

	var out []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan lexical row: %w", core.ErrStore, err)
		}

		out = append(out, id)
	}

	return out, rows.Err()
}

// fuseRanks combines rank-ordered id lists with Reciprocal Rank Fusion:
// score(row) = Σ 1/(k + rank_i) over every list the row appears in. Returns
// ids sorted by descending fused score alongside the score map (§4.6
// "Hybrid search").
func fuseRanks(lists ...[]int64) ([]int64, map[int64]float64) {
	scores := map[int64]float64{}

	var order []int64

	for _, list := range lists {
		for i, id := range list {
			if _, seen := scores[id]; !seen {
				order = append(order, id)
			}

			scores[id] += 1.0 / float64(rrfK+i+1)
		}
	}

	for i := range order {
		for j := i + 1; j < len(order); j++ {
			if scores[order[j]] > scores[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	return order, scores
}

// hydrate loads full SearchHit rows for the given ids, preserving order, and
// attaches each row's fused score.
func (s *Store) hydrate(ctx context.Context, ids []int64, scores map[int64]float64) ([]core.SearchHit, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))

	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, content, metadata FROM documents WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: hydrate: %w", core.ErrStore, err)
	}
	defer rows.Close()

	byID := map[int64]core.SearchHit{}

	for rows.Next() {
		var (
			id           int64
			url, content string
			metaJSON     string
		)

		if err := rows.Scan(&id, &url, &content, &metaJSON); err != nil {
			return nil, fmt.Errorf("%w: scan hydrate row: %w", core.ErrStore, err)
		}

		var meta core.DocumentMetadata

		_ = json.Unmarshal([]byte(metaJSON), &meta)

		byID[id] = core.SearchHit{
			ID:      id,
			URL:     url,
			Content: content,
			Title:   meta.Title,
			Path:    meta.Path,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]core.SearchHit, 0, len(ids))

	for _, id := range ids {
		hit, ok := byID[id]
		if !ok {
			continue
		}

		hit.Score = scores[id]
		out = append(out, hit)
	}

	return out, nil
}
