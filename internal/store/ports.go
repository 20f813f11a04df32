// Package store defines the record store contract shared by every backend:
// flat tables of string cells, loaded wholesale and rewritten wholesale.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a row addressed by ID does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrWriteVerification is returned when a rewritten table does not read
	// back with the expected row count. Backends restore the pre-write state
	// before returning it.
	ErrWriteVerification = errors.New("write verification failed")
)

// Record is one row keyed by column name. Absent columns read as "".
type Record map[string]string

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table names a ledger and fixes its column set. Backends must guarantee the
// column set on read, synthesizing missing columns with the empty default.
type Table struct {
	Name    string
	Columns []string
}

// Store is the persistence contract. Writes are observed wholly-or-not-at-all
// at the table level; there is no isolation between concurrent writers.
type Store interface {
	// Load materializes every row of the table. An absent table is an empty
	// ledger with the default schema, never an error.
	Load(ctx context.Context, t Table) ([]Record, error)

	// Save rewrites the whole table.
	Save(ctx context.Context, t Table, rows []Record) error

	// Append adds one row at the end of the table.
	Append(ctx context.Context, t Table, row Record) error

	// DeleteByID removes the row whose ID column matches id.
	DeleteByID(ctx context.Context, t Table, id string) error

	// Invalidate drops any cached view of the table, forcing the next Load
	// to re-read the underlying storage.
	Invalidate(t Table)

	Close() error
}
