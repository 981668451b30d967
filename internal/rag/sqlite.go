package rag

import (
	"context"
	"database/sql"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite with an FTS5
// index over snippet content.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "rag: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "rag: sqlite exec %s", pragma)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snippets (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	kb_type    TEXT NOT NULL DEFAULT 'generic',
	company    TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snippets_kb_type ON snippets(kb_type);
CREATE INDEX IF NOT EXISTS idx_snippets_company ON snippets(company);

CREATE VIRTUAL TABLE IF NOT EXISTS snippets_fts USING fts5(
	content,
	content='snippets',
	content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS snippets_ai AFTER INSERT ON snippets BEGIN
	INSERT INTO snippets_fts(rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TRIGGER IF NOT EXISTS snippets_ad AFTER DELETE ON snippets BEGIN
	INSERT INTO snippets_fts(snippets_fts, rowid, content) VALUES ('delete', old.rowid, old.content);
END;
`

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteMigration)
	return eris.Wrap(err, "rag: sqlite migrate")
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Search runs an FTS5 match ranked by relevance.
func (s *SQLiteStore) Search(ctx context.Context, query string, filter Filter, limit int) ([]Snippet, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultTopK
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT s.content, s.kb_type, s.company, s.source
		FROM snippets_fts f
		JOIN snippets s ON s.rowid = f.rowid
		WHERE snippets_fts MATCH ?`)
	args = append(args, match)

	if filter.Company != "" {
		qb.WriteString(` AND s.company = ?`)
		args = append(args, filter.Company)
	}
	if filter.Type != "" {
		qb.WriteString(` AND s.kb_type = ?`)
		args = append(args, filter.Type)
	}

	qb.WriteString(` ORDER BY f.rank LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, eris.Wrap(err, "rag: sqlite search")
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var sn Snippet
		if err := rows.Scan(&sn.Content, &sn.Type, &sn.Company, &sn.Source); err != nil {
			return nil, eris.Wrap(err, "rag: sqlite scan snippet")
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "rag: sqlite iterate snippets")
	}
	return out, nil
}

// Add inserts snippets in one transaction. Empty type defaults to generic.
func (s *SQLiteStore) Add(ctx context.Context, snippets []Snippet) error {
	if len(snippets) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "rag: sqlite begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snippets (id, content, kb_type, company, source) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return eris.Wrap(err, "rag: sqlite prepare insert")
	}
	defer stmt.Close()

	for _, sn := range snippets {
		kbType := sn.Type
		if kbType == "" {
			kbType = TypeGeneric
		}
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), sn.Content, kbType, sn.Company, sn.Source); err != nil {
			return eris.Wrap(err, "rag: sqlite insert snippet")
		}
	}

	return eris.Wrap(tx.Commit(), "rag: sqlite commit")
}

// Count reports how many snippets are indexed.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snippets`).Scan(&n)
	if err != nil {
		return 0, eris.Wrap(err, "rag: sqlite count")
	}
	return n, nil
}

// ftsQuery turns a free-text query into an FTS5 OR-match expression.
// FTS5 treats punctuation as syntax, so only bare terms are kept.
func ftsQuery(query string) string {
	words := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(words) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, `"`+w+`"`)
	}
	return strings.Join(quoted, " OR ")
}
