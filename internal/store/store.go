package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tablemap-service/internal/mapping/model"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// LoadTable replaces the named warehouse table with the given one: drop,
// recreate with text columns, bulk-insert via COPY. Returns rows written.
func (s *Store) LoadTable(ctx context.Context, name string, t model.Table) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("empty table name")
	}
	if len(t.Columns) == 0 {
		return 0, fmt.Errorf("table has no columns")
	}

	if _, err := s.pool.Exec(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return 0, fmt.Errorf("drop table %s: %w", name, err)
	}
	if _, err := s.pool.Exec(ctx, createStmt(name, t.Columns)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", name, err)
	}

	rows := make([][]any, len(t.Rows))
	for i := range t.Rows {
		row := make([]any, len(t.Columns))
		for c := range t.Columns {
			row[c] = t.Cell(i, c)
		}
		rows[i] = row
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{name}, t.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", name, err)
	}
	return n, nil
}

func createStmt(name string, cols []string) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " text"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
