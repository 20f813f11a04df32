package ledger

import (
	"context"
	"fmt"

	"registro/internal/core"
	"registro/internal/store"
)

// IncomeLedger persists family income entries in the familia table. Loan
// postings land here too, under the reserved Empréstimo type labels.
type IncomeLedger struct {
	st store.Store
}

func NewIncome(st store.Store) *IncomeLedger {
	return &IncomeLedger{st: st}
}

func (l *IncomeLedger) All(ctx context.Context) ([]core.IncomeEntry, error) {
	rows, err := l.st.Load(ctx, store.FamilyIncome)
	if err != nil {
		return nil, fmt.Errorf("load income ledger: %w", err)
	}
	entries := make([]core.IncomeEntry, 0, len(rows))
	for _, row := range rows {
		e, err := decodeIncome(row)
		if err != nil {
			return nil, fmt.Errorf("income row %s: %w", row[store.ColumnID], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *IncomeLedger) Append(ctx context.Context, e core.IncomeEntry) error {
	if err := l.st.Append(ctx, store.FamilyIncome, encodeIncome(e)); err != nil {
		return fmt.Errorf("append income entry: %w", err)
	}
	return nil
}

func (l *IncomeLedger) ReplaceAll(ctx context.Context, entries []core.IncomeEntry) error {
	rows := make([]store.Record, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, encodeIncome(e))
	}
	if err := l.st.Save(ctx, store.FamilyIncome, rows); err != nil {
		return fmt.Errorf("rewrite income ledger: %w", err)
	}
	return nil
}

func (l *IncomeLedger) DeleteByID(ctx context.Context, id string) error {
	return l.st.DeleteByID(ctx, store.FamilyIncome, id)
}

func (l *IncomeLedger) Invalidate() {
	l.st.Invalidate(store.FamilyIncome)
}

func decodeIncome(row store.Record) (core.IncomeEntry, error) {
	value, err := parseMoney("Valor", row["Valor"])
	if err != nil {
		return core.IncomeEntry{}, err
	}
	date, err := parseDateCell("Data", row["Data"])
	if err != nil {
		return core.IncomeEntry{}, err
	}
	return core.IncomeEntry{
		ID:     row[store.ColumnID],
		Member: row["Membro"],
		Type:   row["Tipo"],
		Value:  value,
		Date:   date,
	}, nil
}

func encodeIncome(e core.IncomeEntry) store.Record {
	return store.Record{
		store.ColumnID: e.ID,
		"Membro":       e.Member,
		"Tipo":         e.Type,
		"Valor":        e.Value.Fixed(),
		"Data":         formatDate(e.Date),
	}
}
