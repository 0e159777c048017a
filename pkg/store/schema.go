package store

import "database/sql"

// schemaStatements creates the three logical tables and the triggers that
// keep documents_fts and documents_vec in sync with documents (§4.6).
// documents_vec is populated by application code on write (it needs a
// precomputed embedding); the delete trigger propagates there too since that
// only requires the row id.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		library TEXT NOT NULL,
		version TEXT NOT NULL,
		url TEXT NOT NULL,
		content TEXT NOT NULL,
		metadata TEXT NOT NULL,
		sort_order INTEGER NOT NULL,
		UNIQUE(url, library, version, sort_order)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_library ON documents(lower(library))`,
	`CREATE INDEX IF NOT EXISTS idx_documents_library_version ON documents(lower(library), lower(version))`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS documents_vec USING vec0(
		embedding float[1536],
		library TEXT,
		version TEXT
	)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
		content, title, url, path,
		tokenize = 'porter unicode61'
	)`,
	`CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
		INSERT INTO documents_fts(rowid, content, title, url, path)
		VALUES (new.id, new.content, json_extract(new.metadata, '$.title'), new.url, json_extract(new.metadata, '$.path'));
	END`,
	`CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE ON documents BEGIN
		UPDATE documents_fts SET
			content = new.content,
			title = json_extract(new.metadata, '$.title'),
			url = new.url,
			path = json_extract(new.metadata, '$.path')
		WHERE rowid = new.id;
	END`,
	`CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
		DELETE FROM documents_fts WHERE rowid = old.id;
		DELETE FROM documents_vec WHERE rowid = old.id;
	END`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
