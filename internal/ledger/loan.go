package ledger

import (
	"context"
	"fmt"
	"strconv"

	"registro/internal/core"
	"registro/internal/store"
)

// LoanLedger persists the loan book in the emprestimos table.
type LoanLedger struct {
	st store.Store
}

func NewLoan(st store.Store) *LoanLedger {
	return &LoanLedger{st: st}
}

func (l *LoanLedger) All(ctx context.Context) ([]core.Loan, error) {
	rows, err := l.st.Load(ctx, store.Loans)
	if err != nil {
		return nil, fmt.Errorf("load loan ledger: %w", err)
	}
	loans := make([]core.Loan, 0, len(rows))
	for _, row := range rows {
		loan, err := decodeLoan(row)
		if err != nil {
			return nil, fmt.Errorf("loan row %s: %w", row[store.ColumnID], err)
		}
		loans = append(loans, loan)
	}
	return loans, nil
}

// Get loads one loan by its ID.
func (l *LoanLedger) Get(ctx context.Context, id string) (core.Loan, error) {
	loans, err := l.All(ctx)
	if err != nil {
		return core.Loan{}, err
	}
	for _, loan := range loans {
		if loan.ID == id {
			return loan, nil
		}
	}
	return core.Loan{}, fmt.Errorf("loan %s: %w", id, store.ErrNotFound)
}

func (l *LoanLedger) Append(ctx context.Context, loan core.Loan) error {
	if err := l.st.Append(ctx, store.Loans, encodeLoan(loan)); err != nil {
		return fmt.Errorf("append loan: %w", err)
	}
	return nil
}

// Update rewrites the table with the given loan replacing its stored row.
func (l *LoanLedger) Update(ctx context.Context, loan core.Loan) error {
	loans, err := l.All(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range loans {
		if loans[i].ID == loan.ID {
			loans[i] = loan
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("loan %s: %w", loan.ID, store.ErrNotFound)
	}

	rows := make([]store.Record, 0, len(loans))
	for _, lo := range loans {
		rows = append(rows, encodeLoan(lo))
	}
	if err := l.st.Save(ctx, store.Loans, rows); err != nil {
		return fmt.Errorf("rewrite loan ledger: %w", err)
	}
	return nil
}

func (l *LoanLedger) DeleteByID(ctx context.Context, id string) error {
	return l.st.DeleteByID(ctx, store.Loans, id)
}

func (l *LoanLedger) Invalidate() {
	l.st.Invalidate(store.Loans)
}

func decodeLoan(row store.Record) (core.Loan, error) {
	principal, err := parseMoney("Valor_Original", row["Valor_Original"])
	if err != nil {
		return core.Loan{}, err
	}
	total, err := parseMoney("Valor_Com_Juros", row["Valor_Com_Juros"])
	if err != nil {
		return core.Loan{}, err
	}
	installment, err := parseMoney("Valor_Parcela", row["Valor_Parcela"])
	if err != nil {
		return core.Loan{}, err
	}
	totalInstallments, err := parseIntCell("Parcelas_Total", row["Parcelas_Total"])
	if err != nil {
		return core.Loan{}, err
	}
	paid, err := parseIntCell("Parcelas_Pagas", row["Parcelas_Pagas"])
	if err != nil {
		return core.Loan{}, err
	}
	date, err := parseDateCell("Data_Emprestimo", row["Data_Emprestimo"])
	if err != nil {
		return core.Loan{}, err
	}

	// The rate is not persisted; it is recoverable from principal and total
	// but nothing downstream needs it after origination.
	loan := core.Loan{
		ID:                row[store.ColumnID],
		Name:              row["Nome"],
		Direction:         core.LoanDirection(row["Tipo"]),
		Principal:         principal,
		Total:             total,
		TotalInstallments: totalInstallments,
		InstallmentsPaid:  paid,
		Installment:       installment,
		Date:              date,
		Status:            core.LoanStatus(row["Status"]),
		Notes:             row["Observacoes"],
	}
	if loan.Status == "" {
		loan.Status = core.StatusActive
	}
	return loan, nil
}

func encodeLoan(l core.Loan) store.Record {
	return store.Record{
		store.ColumnID:    l.ID,
		"Nome":            l.Name,
		"Tipo":            string(l.Direction),
		"Valor_Original":  l.Principal.Fixed(),
		"Valor_Com_Juros": l.Total.Fixed(),
		"Parcelas_Total":  strconv.Itoa(l.TotalInstallments),
		"Parcelas_Pagas":  strconv.Itoa(l.InstallmentsPaid),
		"Valor_Parcela":   l.Installment.Fixed(),
		"Data_Emprestimo": formatDate(l.Date),
		"Status":          string(l.Status),
		"Observacoes":     l.Notes,
	}
}
