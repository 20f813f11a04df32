package ledger

import (
	"context"
	"fmt"

	"registro/internal/core"
	"registro/internal/store"
)

// ExpenseLedger persists expense entries in the despesas table.
type ExpenseLedger struct {
	st store.Store
}

func NewExpense(st store.Store) *ExpenseLedger {
	return &ExpenseLedger{st: st}
}

func (l *ExpenseLedger) All(ctx context.Context) ([]core.ExpenseEntry, error) {
	rows, err := l.st.Load(ctx, store.Expenses)
	if err != nil {
		return nil, fmt.Errorf("load expense ledger: %w", err)
	}
	entries := make([]core.ExpenseEntry, 0, len(rows))
	for _, row := range rows {
		e, err := decodeExpense(row)
		if err != nil {
			return nil, fmt.Errorf("expense row %s: %w", row[store.ColumnID], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *ExpenseLedger) Append(ctx context.Context, e core.ExpenseEntry) error {
	if err := l.st.Append(ctx, store.Expenses, encodeExpense(e)); err != nil {
		return fmt.Errorf("append expense entry: %w", err)
	}
	return nil
}

func (l *ExpenseLedger) ReplaceAll(ctx context.Context, entries []core.ExpenseEntry) error {
	rows := make([]store.Record, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, encodeExpense(e))
	}
	if err := l.st.Save(ctx, store.Expenses, rows); err != nil {
		return fmt.Errorf("rewrite expense ledger: %w", err)
	}
	return nil
}

func (l *ExpenseLedger) DeleteByID(ctx context.Context, id string) error {
	return l.st.DeleteByID(ctx, store.Expenses, id)
}

func (l *ExpenseLedger) Invalidate() {
	l.st.Invalidate(store.Expenses)
}

func decodeExpense(row store.Record) (core.ExpenseEntry, error) {
	value, err := parseMoney("Valor", row["Valor"])
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	date, err := parseDateCell("Data", row["Data"])
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	return core.ExpenseEntry{
		ID:       row[store.ColumnID],
		Member:   row["Membro"],
		Category: row["Categoria"],
		Value:    value,
		Date:     date,
	}, nil
}

func encodeExpense(e core.ExpenseEntry) store.Record {
	return store.Record{
		store.ColumnID: e.ID,
		"Membro":       e.Member,
		"Categoria":    e.Category,
		"Valor":        e.Value.Fixed(),
		"Data":         formatDate(e.Date),
	}
}
