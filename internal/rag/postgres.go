package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it for tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresStore implements Store using pgxpool with Postgres full-text
// search over snippet content.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool and ensures
// the schema exists.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "rag: postgres parse config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "rag: postgres connect")
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snippets (
	id         UUID PRIMARY KEY,
	content    TEXT NOT NULL,
	kb_type    TEXT NOT NULL DEFAULT 'generic',
	company    TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	tsv        TSVECTOR GENERATED ALWAYS AS (to_tsvector('english', content)) STORED
);

CREATE INDEX IF NOT EXISTS idx_snippets_tsv ON snippets USING gin(tsv);
CREATE INDEX IF NOT EXISTS idx_snippets_kb_type ON snippets(kb_type);
CREATE INDEX IF NOT EXISTS idx_snippets_company ON snippets(company);
`

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "rag: postgres migrate")
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Search runs a websearch-style full-text query ranked by ts_rank.
func (s *PostgresStore) Search(ctx context.Context, query string, filter Filter, limit int) ([]Snippet, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultTopK
	}

	var (
		qb   strings.Builder
		args = []any{query}
	)
	qb.WriteString(`SELECT content, kb_type, company, source
		FROM snippets
		WHERE tsv @@ websearch_to_tsquery('english', $1)`)

	if filter.Company != "" {
		args = append(args, filter.Company)
		fmt.Fprintf(&qb, ` AND company = $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		fmt.Fprintf(&qb, ` AND kb_type = $%d`, len(args))
	}

	args = append(args, limit)
	fmt.Fprintf(&qb, ` ORDER BY ts_rank(tsv, websearch_to_tsquery('english', $1)) DESC LIMIT $%d`, len(args))

	rows, err := s.pool.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, eris.Wrap(err, "rag: postgres search")
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var sn Snippet
		if err := rows.Scan(&sn.Content, &sn.Type, &sn.Company, &sn.Source); err != nil {
			return nil, eris.Wrap(err, "rag: postgres scan snippet")
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "rag: postgres iterate snippets")
	}
	return out, nil
}

// Add inserts snippets one by one. Indexing is an offline operation, so
// round trips are acceptable here.
func (s *PostgresStore) Add(ctx context.Context, snippets []Snippet) error {
	for _, sn := range snippets {
		kbType := sn.Type
		if kbType == "" {
			kbType = TypeGeneric
		}
		_, err := s.pool.Exec(ctx,
			`INSERT INTO snippets (id, content, kb_type, company, source) VALUES (gen_random_uuid(), $1, $2, $3, $4)`,
			sn.Content, kbType, sn.Company, sn.Source,
		)
		if err != nil {
			return eris.Wrap(err, "rag: postgres insert snippet")
		}
	}
	return nil
}

// Count reports how many snippets are indexed.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM snippets`).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "rag: postgres count")
	}
	return n, nil
}
