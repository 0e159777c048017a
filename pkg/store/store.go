// Package store implements the persistent hybrid (vector + full-text)
// document store described in §4.6: a single SQLite database holding
// documents, documents_vec, and documents_fts, kept in sync by triggers and
// queried through Reciprocal Rank Fusion.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ksysoev/docindex/pkg/core"
)

// Store is the embedded hybrid document store (§4.6).
type Store struct {
	db       *sql.DB
	embedder Embedder
	dim      dimensionPolicy
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithAllowTruncate opts into accepting embeddings wider than
// CanonicalDimension by truncating them (Matryoshka-style models).
func WithAllowTruncate() Option {
	return func(s *Store) { s.dim.allowTruncate = true }
}

// Open opens (creating if absent) the SQLite database at path and applies
// the schema. embedder may be nil for read-only inspection tools that never
// write or search.
func Open(path string, embedder Embedder, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", core.ErrStore, path, err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %w", core.ErrStore, err)
	}

	s := &Store{
		db:       db,
		embedder: embedder,
		dim:      dimensionPolicy{d: CanonicalDimension},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// embeddingText builds the prefixed serialization embeddings are computed
// over, so titles and breadcrumbs influence retrieval (§4.6 invariants).
func embeddingText(meta core.DocumentMetadata, content string) string {
	var b strings.Builder

	b.WriteString("<title>")
	b.WriteString(meta.Title)
	b.WriteString("</title>\n<url>")
	b.WriteString(meta.URL)
	b.WriteString("</url>\n<path>")
	b.WriteString(strings.Join(meta.Path, " / "))
	b.WriteString("</path>\n")
	b.WriteString(content)

	return b.String()
}

// PutPage writes one source page's chunks in a single transaction: a
// documents row and its matching documents_vec row per chunk, sort_order
// following chunk order (§4.6, §5 "each page's chunks are written in one
// transaction").
func (s *Store) PutPage(ctx context.Context, lib core.Library, url string, chunks []core.Chunk) error {
	lib = lib.Fold()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", core.ErrStore, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i, chunk := range chunks {
		meta := core.DocumentMetadata{
			Title:   chunkTitle(chunk),
			URL:     url,
			Library: lib.Name,
			Version: lib.Version,
			Level:   chunk.Level,
			Path:    chunk.Path,
		}

		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("%w: marshal metadata: %w", core.ErrStore, err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO documents (library, version, url, content, metadata, sort_order) VALUES (?, ?, ?, ?, ?, ?)`,
			lib.Name, lib.Version, url, chunk.Content, string(metaJSON), i,
		)
		if err != nil {
			return fmt.Errorf("%w: insert document: %w", core.ErrStore, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: last insert id: %w", core.ErrStore, err)
		}

		if s.embedder != nil {
			vec, err := s.embedder.Embed(ctx, embeddingText(meta, chunk.Content))
			if err != nil {
				return fmt.Errorf("embed chunk: %w", err)
			}

			fitted, err := s.dim.fit(vec)
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO documents_vec (rowid, embedding, library, version) VALUES (?, ?, ?, ?)`,
				id, encodeEmbedding(fitted), lib.Name, lib.Version,
			); err != nil {
				return fmt.Errorf("%w: insert vec row: %w", core.ErrStore, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", core.ErrStore, err)
	}

	return nil
}

// chunkTitle derives a display title for a chunk from its section path,
// falling back to the heading text the chunk itself carries.
func chunkTitle(chunk core.Chunk) string {
	if len(chunk.Path) > 0 {
		return chunk.Path[len(chunk.Path)-1]
	}

	if chunk.HasType(core.SectionHeading) {
		return chunk.Content
	}

	return ""
}

// RemoveLibraryVersion deletes every document for a (library, version) pair;
// triggers propagate the deletion to documents_fts and documents_vec (§4.6
// invariants).
func (s *Store) RemoveLibraryVersion(ctx context.Context, lib core.Library) error {
	lib = lib.Fold()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE lower(library) = ? AND lower(version) = ?`,
		lib.Name, lib.Version,
	)
	if err != nil {
		return fmt.Errorf("%w: remove %s@%s: %w", core.ErrStore, lib.Name, lib.Version, err)
	}

	return nil
}

// ListLibraries returns every distinct (library, version) pair currently
// indexed, grouped by library (§4.9 "List libraries").
func (s *Store) ListLibraries(ctx context.Context) ([]core.LibraryInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT library, version, COUNT(*) FROM documents GROUP BY library, version ORDER BY library, version`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list libraries: %w", core.ErrStore, err)
	}
	defer rows.Close()

	byLib := map[string]*core.LibraryInfo{}
	var order []string

	for rows.Next() {
		var (
			lib, version string
			count        int
		)

		if err := rows.Scan(&lib, &version, &count); err != nil {
			return nil, fmt.Errorf("%w: scan library row: %w", core.ErrStore, err)
		}

		info, ok := byLib[lib]
		if !ok {
			info = &core.LibraryInfo{Library: lib}
			byLib[lib] = info
			order = append(order, lib)
		}

		info.DocCount += count

		if version == "" {
			info.Unversioned = true
		} else {
			info.Versions = append(info.Versions, version)
		}
	}

	out := make([]core.LibraryInfo, 0, len(order))
	for _, lib := range order {
		out = append(out, *byLib[lib])
	}

	return out, rows.Err()
}

// Vacuum reclaims space freed by deleted libraries/versions. Exposed as a
// maintenance operation (§9 supplemented features).
func (s *Store) Vacuum(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("%w: vacuum: %w", core.ErrStore, err)
	}

	return nil
}

// Stats reports the total document and distinct-library counts, a small
// maintenance/diagnostic surface (§9 supplemented features).
type Stats struct {
	Documents int
	Libraries int
}

// Stats computes aggregate counts across the whole store.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT lower(library)) FROM documents`)
	if err := row.Scan(&stats.Documents, &stats.Libraries); err != nil {
		return Stats{}, fmt.Errorf("%w: stats: %w", core.ErrStore, err)
	}

	return stats, nil
}
