package ledger

import (
	"context"
	"fmt"

	"registro/internal/core"
	"registro/internal/store"
)

// InvestmentLedger persists investment entries in the investimentos table.
type InvestmentLedger struct {
	st store.Store
}

func NewInvestment(st store.Store) *InvestmentLedger {
	return &InvestmentLedger{st: st}
}

func (l *InvestmentLedger) All(ctx context.Context) ([]core.InvestmentEntry, error) {
	rows, err := l.st.Load(ctx, store.Investments)
	if err != nil {
		return nil, fmt.Errorf("load investment ledger: %w", err)
	}
	entries := make([]core.InvestmentEntry, 0, len(rows))
	for _, row := range rows {
		e, err := decodeInvestment(row)
		if err != nil {
			return nil, fmt.Errorf("investment row %s: %w", row[store.ColumnID], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *InvestmentLedger) Append(ctx context.Context, e core.InvestmentEntry) error {
	if err := l.st.Append(ctx, store.Investments, encodeInvestment(e)); err != nil {
		return fmt.Errorf("append investment entry: %w", err)
	}
	return nil
}

func (l *InvestmentLedger) DeleteByID(ctx context.Context, id string) error {
	return l.st.DeleteByID(ctx, store.Investments, id)
}

func (l *InvestmentLedger) Invalidate() {
	l.st.Invalidate(store.Investments)
}

func decodeInvestment(row store.Record) (core.InvestmentEntry, error) {
	value, err := parseMoney("Valor", row["Valor"])
	if err != nil {
		return core.InvestmentEntry{}, err
	}
	yield, err := parseMoney("Rendimento", row["Rendimento"])
	if err != nil {
		return core.InvestmentEntry{}, err
	}
	date, err := parseDateCell("Data", row["Data"])
	if err != nil {
		return core.InvestmentEntry{}, err
	}
	return core.InvestmentEntry{
		ID:     row[store.ColumnID],
		Member: row["Membro"],
		Type:   row["Tipo"],
		Value:  value,
		Date:   date,
		Yield:  yield,
	}, nil
}

func encodeInvestment(e core.InvestmentEntry) store.Record {
	return store.Record{
		store.ColumnID: e.ID,
		"Membro":       e.Member,
		"Tipo":         e.Type,
		"Valor":        e.Value.Fixed(),
		"Data":         formatDate(e.Date),
		"Rendimento":   e.Yield.Fixed(),
	}
}
