// Package memstore keeps ledgers in memory. It backs tests and the default
// backend when no durable storage is configured.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"registro/internal/store"
)

type Store struct {
	mu     sync.Mutex
	tables map[string][]store.Record
}

func New() *Store {
	return &Store{tables: make(map[string][]store.Record)}
}

func (s *Store) Load(_ context.Context, t store.Table) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[t.Name]
	out := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		clone := row.Clone()
		for _, col := range t.Columns {
			if _, ok := clone[col]; !ok {
				clone[col] = ""
			}
		}
		out = append(out, clone)
	}
	return out, nil
}

func (s *Store) Save(_ context.Context, t store.Table, rows []store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		copied = append(copied, row.Clone())
	}
	s.tables[t.Name] = copied
	return nil
}

func (s *Store) Append(_ context.Context, t store.Table, row store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[t.Name] = append(s.tables[t.Name], row.Clone())
	return nil
}

func (s *Store) DeleteByID(_ context.Context, t store.Table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[t.Name]
	for i, row := range rows {
		if row[store.ColumnID] == id {
			s.tables[t.Name] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("table %s id %s: %w", t.Name, id, store.ErrNotFound)
}

func (s *Store) Invalidate(store.Table) {}

func (s *Store) Close() error { return nil }
