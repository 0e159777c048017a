package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// pageRow is one documents row scoped to a single (library, version, url)
// page, decoded once and reused by every navigation helper.
type pageRow struct {
	id        int64
	content   string
	sortOrder int
	meta      core.DocumentMetadata
}

// anchor loads the row named by id plus every other row on the same page
// (library, version, url), ordered by sort_order.
func (s *Store) anchor(ctx context.Context, id int64) (pageRow, []pageRow, error) {
	var (
		lib, version, url string
	)

	row := s.db.QueryRowContext(ctx, `SELECT library, version, url FROM documents WHERE id = ?`, id)
	if err := row.Scan(&lib, &version, &url); err != nil {
		return pageRow{}, nil, fmt.Errorf("%w: anchor %d: %w", core.ErrStore, id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, sort_order, metadata FROM documents
		 WHERE library = ? AND version = ? AND url = ?
		 ORDER BY sort_order`,
		lib, version, url,
	)
	if err != nil {
		return pageRow{}, nil, fmt.Errorf("%w: page rows: %w", core.ErrStore, err)
	}
	defer rows.Close()

	var (
		page   []pageRow
		anchor pageRow
	)

	for rows.Next() {
		var (
			rowID     int64
			content   string
			sortOrder int
			metaJSON  string
		)

		if err := rows.Scan(&rowID, &content, &sortOrder, &metaJSON); err != nil {
			return pageRow{}, nil, fmt.Errorf("%w: scan page row: %w", core.ErrStore, err)
		}

		var meta core.DocumentMetadata

		_ = json.Unmarshal([]byte(metaJSON), &meta)

		pr := pageRow{id: rowID, content: content, sortOrder: sortOrder, meta: meta}
		page = append(page, pr)

		if rowID == id {
			anchor = pr
		}
	}

	return anchor, page, rows.Err()
}

// FindParentChunk returns the row on the same page whose path equals
// anchor.path[:-1], or (core.StoredDocument{}, false) if the anchor is a
// root chunk (§4.6 "Hierarchical navigation").
func (s *Store) FindParentChunk(ctx context.Context, id int64) (core.StoredDocument, bool, error) {
	anchor, page, err := s.anchor(ctx, id)
	if err != nil {
		return core.StoredDocument{}, false, err
	}

	if len(anchor.meta.Path) == 0 {
		return core.StoredDocument{}, false, nil
	}

	parentPath := anchor.meta.Path[:len(anchor.meta.Path)-1]

	for _, pr := range page {
		if pathEqual(pr.meta.Path, parentPath) {
			return toStoredDocument(pr), true, nil
		}
	}

	return core.StoredDocument{}, false, nil
}

// FindPrecedingSiblingChunks returns up to n same-path rows immediately
// before the anchor in sort_order, nearest first.
func (s *Store) FindPrecedingSiblingChunks(ctx context.Context, id int64, n int) ([]core.StoredDocument, error) {
	anchor, page, err := s.anchor(ctx, id)
	if err != nil {
		return nil, err
	}

	var siblings []pageRow

	for _, pr := range page {
		if pr.sortOrder < anchor.sortOrder && pathEqual(pr.meta.Path, anchor.meta.Path) {
			siblings = append(siblings, pr)
		}
	}

	if len(siblings) > n {
		siblings = siblings[len(siblings)-n:]
	}

	out := make([]core.StoredDocument, len(siblings))
	for i, pr := range siblings {
		out[i] = toStoredDocument(pr)
	}

	return out, nil
}

// FindSubsequentSiblingChunks returns up to n same-path rows immediately
// after the anchor in sort_order, nearest first.
func (s *Store) FindSubsequentSiblingChunks(ctx context.Context, id int64, n int) ([]core.StoredDocument, error) {
	anchor, page, err := s.anchor(ctx, id)
	if err != nil {
		return nil, err
	}

	var siblings []pageRow

	for _, pr := range page {
		if pr.sortOrder > anchor.sortOrder && pathEqual(pr.meta.Path, anchor.meta.Path) {
			siblings = append(siblings, pr)

			if len(siblings) == n {
				break
			}
		}
	}

	out := make([]core.StoredDocument, len(siblings))
	for i, pr := range siblings {
		out[i] = toStoredDocument(pr)
	}

	return out, nil
}

// FindChildChunks returns up to n rows whose path is exactly one level
// deeper than the anchor's and begins with it, in sort_order.
func (s *Store) FindChildChunks(ctx context.Context, id int64, n int) ([]core.StoredDocument, error) {
	anchor, page, err := s.anchor(ctx, id)
	if err != nil {
		return nil, err
	}

	parentLen := len(anchor.meta.Path)

	var children []pageRow

	for _, pr := range page {
		if len(pr.meta.Path) == parentLen+1 && pathHasPrefix(pr.meta.Path, anchor.meta.Path) {
			children = append(children, pr)

			if len(children) == n {
				break
			}
		}
	}

	out := make([]core.StoredDocument, len(children))
	for i, pr := range children {
		out[i] = toStoredDocument(pr)
	}

	return out, nil
}

func toStoredDocument(pr pageRow) core.StoredDocument {
	return core.StoredDocument{
		ID:        pr.id,
		Library:   pr.meta.Library,
		Version:   pr.meta.Version,
		URL:       pr.meta.URL,
		Content:   pr.content,
		Metadata:  pr.meta,
		SortOrder: pr.sortOrder,
	}
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func pathHasPrefix(full, prefix []string) bool {
	if len(prefix) > len(full) {
		return false
	}

	for i := range prefix {
		if full[i] != prefix[i] {
			return false
		}
	}

	return true
}
