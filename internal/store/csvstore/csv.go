// Package csvstore persists ledgers as one CSV file per table, matching the
// original flat-file layout. Every mutation is a whole-file rewrite guarded
// by a pre-write snapshot and a read-back row-count verification.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"registro/internal/store"
)

// Swapped in tests to simulate storage faults.
var (
	createFile = os.Create
	openFile   = os.Open
)

type Store struct {
	dir string

	mu    sync.Mutex
	cache map[string][]store.Record
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir, cache: make(map[string][]store.Record)}, nil
}

func (s *Store) path(t store.Table) string {
	return filepath.Join(s.dir, t.Name+".csv")
}

func (s *Store) Load(ctx context.Context, t store.Table) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.loadLocked(ctx, t)
	if err != nil {
		return nil, err
	}
	return cloneRows(rows), nil
}

func (s *Store) loadLocked(ctx context.Context, t store.Table) ([]store.Record, error) {
	if rows, ok := s.cache[t.Name]; ok {
		return rows, nil
	}

	rows, drifted, err := s.readFile(t)
	if err != nil {
		return nil, err
	}
	if drifted {
		// Missing columns were backfilled with the empty default; rewrite the
		// file so the schema is guaranteed from here on.
		slog.InfoContext(ctx, "Ledger schema backfilled",
			"table", t.Name, "columns", len(t.Columns))
		if err := s.writeFile(t, rows); err != nil {
			return nil, fmt.Errorf("rewrite %s after schema backfill: %w", t.Name, err)
		}
	}

	s.cache[t.Name] = rows
	return rows, nil
}

// readFile materializes the table from disk. An absent or empty file is an
// empty ledger, never an error. The second result reports schema drift.
func (s *Store) readFile(t store.Table) ([]store.Record, bool, error) {
	f, err := openFile(s.path(t))
	if errors.Is(err, os.ErrNotExist) {
		if err := s.writeFile(t, nil); err != nil {
			return nil, false, fmt.Errorf("create %s: %w", t.Name, err)
		}
		return []store.Record{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", t.Name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []store.Record{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s header: %w", t.Name, err)
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	drifted := false
	for _, col := range t.Columns {
		if !present[col] {
			drifted = true
			break
		}
	}

	var rows []store.Record
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("read %s row %d: %w", t.Name, len(rows)+2, err)
		}
		row := make(store.Record, len(t.Columns))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		for _, col := range t.Columns {
			if _, ok := row[col]; !ok {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	if rows == nil {
		rows = []store.Record{}
	}
	return rows, drifted, nil
}

func (s *Store) writeFile(t store.Table, rows []store.Record) error {
	f, err := createFile(s.path(t))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = row[col]
		}
		if err := w.Write(cells); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush: %w", err)
	}
	return f.Close()
}

// Save rewrites the table. The previous file content is snapshotted first;
// if the rewritten file does not read back with the expected row count the
// snapshot is restored and ErrWriteVerification surfaces.
func (s *Store) Save(ctx context.Context, t store.Table, rows []store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, t, cloneRows(rows))
}

func (s *Store) saveLocked(ctx context.Context, t store.Table, rows []store.Record) error {
	snapshot, err := os.ReadFile(s.path(t))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("snapshot %s: %w", t.Name, err)
	}

	if err := s.writeFile(t, rows); err != nil {
		s.restore(ctx, t, snapshot)
		delete(s.cache, t.Name)
		return fmt.Errorf("write %s: %w", t.Name, err)
	}

	written, _, err := s.readFile(t)
	if err != nil || len(written) != len(rows) {
		s.restore(ctx, t, snapshot)
		delete(s.cache, t.Name)
		slog.ErrorContext(ctx, "Ledger write verification failed, snapshot restored",
			"table", t.Name, "expected_rows", len(rows), "read_error", err)
		return fmt.Errorf("table %s: %w", t.Name, store.ErrWriteVerification)
	}

	s.cache[t.Name] = rows
	return nil
}

func (s *Store) restore(ctx context.Context, t store.Table, snapshot []byte) {
	if snapshot == nil {
		return
	}
	if err := os.WriteFile(s.path(t), snapshot, 0o644); err != nil {
		slog.ErrorContext(ctx, "Snapshot restore failed", "table", t.Name, "error", err)
	}
}

func (s *Store) Append(ctx context.Context, t store.Table, row store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadLocked(ctx, t)
	if err != nil {
		return err
	}
	return s.saveLocked(ctx, t, append(cloneRows(rows), row.Clone()))
}

func (s *Store) DeleteByID(ctx context.Context, t store.Table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadLocked(ctx, t)
	if err != nil {
		return err
	}
	kept := make([]store.Record, 0, len(rows))
	found := false
	for _, row := range rows {
		if row[store.ColumnID] == id {
			found = true
			continue
		}
		kept = append(kept, row.Clone())
	}
	if !found {
		return fmt.Errorf("table %s id %s: %w", t.Name, id, store.ErrNotFound)
	}
	return s.saveLocked(ctx, t, kept)
}

// Invalidate drops the cached rows so the next Load re-reads the file.
func (s *Store) Invalidate(t store.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, t.Name)
}

func (s *Store) Close() error { return nil }

func cloneRows(rows []store.Record) []store.Record {
	out := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Clone())
	}
	return out
}
