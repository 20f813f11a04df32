// Package sqlitestore keeps the ledgers in SQLite while preserving the record
// store contract: tables of string cells, whole-table rewrites, verified row
// counts.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"registro/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (s *Store) Load(ctx context.Context, t store.Table) ([]store.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %q ORDER BY seq`, quoteColumns(t.Columns), t.Name)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.Name, err)
	}
	defer rows.Close()

	out := []store.Record{}
	for rows.Next() {
		cells := make([]sql.NullString, len(t.Columns))
		dest := make([]any, len(t.Columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.Name, err)
		}
		row := make(store.Record, len(t.Columns))
		for i, col := range t.Columns {
			row[col] = cells[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.Name, err)
	}
	return out, nil
}

// Save rewrites the whole table in one transaction; the row count is verified
// before commit so a mismatch rolls everything back.
func (s *Store) Save(ctx context.Context, t store.Table, records []store.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rewrite of %s: %w", t.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q`, t.Name)); err != nil {
		return fmt.Errorf("clear %s: %w", t.Name, err)
	}

	insert := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		t.Name, quoteColumns(t.Columns), placeholders(len(t.Columns)))
	for _, row := range records {
		args := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			args[i] = row[col]
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", t.Name, err)
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %q`, t.Name)).Scan(&count); err != nil {
		return fmt.Errorf("count %s: %w", t.Name, err)
	}
	if count != len(records) {
		return fmt.Errorf("table %s: wrote %d rows, read back %d: %w",
			t.Name, len(records), count, store.ErrWriteVerification)
	}

	return tx.Commit()
}

func (s *Store) Append(ctx context.Context, t store.Table, row store.Record) error {
	insert := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		t.Name, quoteColumns(t.Columns), placeholders(len(t.Columns)))
	args := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		args[i] = row[col]
	}
	if _, err := s.db.ExecContext(ctx, insert, args...); err != nil {
		return fmt.Errorf("append to %s: %w", t.Name, err)
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, t store.Table, id string) error {
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %q WHERE "ID" = ?`, t.Name), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", t.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", t.Name, err)
	}
	if affected == 0 {
		return fmt.Errorf("table %s id %s: %w", t.Name, id, store.ErrNotFound)
	}
	return nil
}

// Invalidate is a no-op: every Load already goes to the database.
func (s *Store) Invalidate(store.Table) {}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
