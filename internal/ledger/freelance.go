package ledger

import (
	"context"
	"fmt"
	"strconv"

	"registro/internal/core"
	"registro/internal/store"
)

// FreelanceLedger persists freelance week entries in the horas table.
type FreelanceLedger struct {
	st store.Store
}

func NewFreelance(st store.Store) *FreelanceLedger {
	return &FreelanceLedger{st: st}
}

func (l *FreelanceLedger) All(ctx context.Context) ([]core.FreelanceEntry, error) {
	rows, err := l.st.Load(ctx, store.Freelance)
	if err != nil {
		return nil, fmt.Errorf("load freelance ledger: %w", err)
	}
	entries := make([]core.FreelanceEntry, 0, len(rows))
	for _, row := range rows {
		e, err := decodeFreelance(row)
		if err != nil {
			return nil, fmt.Errorf("freelance row %s: %w", row[store.ColumnID], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *FreelanceLedger) Append(ctx context.Context, e core.FreelanceEntry) error {
	if err := l.st.Append(ctx, store.Freelance, encodeFreelance(e)); err != nil {
		return fmt.Errorf("append freelance entry: %w", err)
	}
	return nil
}

func (l *FreelanceLedger) ReplaceAll(ctx context.Context, entries []core.FreelanceEntry) error {
	rows := make([]store.Record, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, encodeFreelance(e))
	}
	if err := l.st.Save(ctx, store.Freelance, rows); err != nil {
		return fmt.Errorf("rewrite freelance ledger: %w", err)
	}
	return nil
}

func (l *FreelanceLedger) DeleteByID(ctx context.Context, id string) error {
	return l.st.DeleteByID(ctx, store.Freelance, id)
}

func (l *FreelanceLedger) Invalidate() {
	l.st.Invalidate(store.Freelance)
}

func decodeFreelance(row store.Record) (core.FreelanceEntry, error) {
	date, err := parseDateCell("Data", row["Data"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	hours, err := parseDecimalCell("Horas", row["Horas"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	rate, err := parseDecimalCell("Cotacao", row["Cotacao"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	score, err := parseIntCell("Nota", row["Nota"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	nominalUSD, err := parseMoney("Valor_USD", row["Valor_USD"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	nominalBRL, err := parseMoney("Valor_BRL", row["Valor_BRL"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	adjustedUSD, err := parseMoney("Valor_Ajustado_USD", row["Valor_Ajustado_USD"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	adjustedBRL, err := parseMoney("Valor_Ajustado_BRL", row["Valor_Ajustado_BRL"])
	if err != nil {
		return core.FreelanceEntry{}, err
	}

	return core.FreelanceEntry{
		ID:          row[store.ColumnID],
		Date:        date,
		Hours:       hours,
		Rate:        rate,
		Week:        row["Semana"],
		Score:       core.QualityScore(score),
		NominalUSD:  nominalUSD,
		NominalBRL:  nominalBRL,
		AdjustedUSD: adjustedUSD,
		AdjustedBRL: adjustedBRL,
		Paid:        parseBoolCell(row["Pago"]),
	}, nil
}

func encodeFreelance(e core.FreelanceEntry) store.Record {
	return store.Record{
		store.ColumnID:       e.ID,
		"Data":               formatDate(e.Date),
		"Horas":              e.Hours.String(),
		"Valor_USD":          e.NominalUSD.Fixed(),
		"Cotacao":            e.Rate.String(),
		"Valor_BRL":          e.NominalBRL.Fixed(),
		"Semana":             e.Week,
		"Nota":               strconv.Itoa(int(e.Score)),
		"Valor_Ajustado_USD": e.AdjustedUSD.Fixed(),
		"Valor_Ajustado_BRL": e.AdjustedBRL.Fixed(),
		"Pago":               formatBool(e.Paid),
	}
}
