package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrincipal     = errors.New("principal must be positive")
	ErrInvalidInterestRate  = errors.New("interest rate must not be negative")
	ErrInvalidInstallments  = errors.New("total installments must be at least 1")
	ErrEmptyLoanName        = errors.New("empty loan name")
	ErrInvalidLoanDirection = errors.New("invalid loan direction")
)

var hundred = decimal.NewFromInt(100)

// LoanDirection distinguishes money we lent out from money we borrowed.
// The persisted labels match the original ledger files.
type LoanDirection string

const (
	DirectionLent     LoanDirection = "Emprestado"
	DirectionBorrowed LoanDirection = "Recebido"
)

func ParseLoanDirection(s string) (LoanDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emprestado", "lent":
		return DirectionLent, nil
	case "recebido", "borrowed":
		return DirectionBorrowed, nil
	default:
		return "", ErrInvalidLoanDirection
	}
}

type LoanStatus string

const (
	StatusActive  LoanStatus = "Ativo"
	StatusSettled LoanStatus = "Quitado"
)

type Loan struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Direction         LoanDirection   `json:"direction"`
	Principal         Money           `json:"principal"`
	RatePct           decimal.Decimal `json:"rate_pct"`
	Total             Money           `json:"total"` // principal plus interest
	TotalInstallments int             `json:"total_installments"`
	InstallmentsPaid  int             `json:"installments_paid"`
	Installment       Money           `json:"installment"`
	Date              Date            `json:"date"` // origination date
	Status            LoanStatus      `json:"status"`
	Notes             string          `json:"notes,omitempty"`
}

// NewLoan computes the amortization schedule: the interest-inclusive total
// and the fixed per-installment amount, rounded to cents.
func NewLoan(name string, direction LoanDirection, principal Money, ratePct decimal.Decimal, installments int, date Date, notes string) (Loan, error) {
	if strings.TrimSpace(name) == "" {
		return Loan{}, ErrEmptyLoanName
	}
	if direction != DirectionLent && direction != DirectionBorrowed {
		return Loan{}, ErrInvalidLoanDirection
	}
	if principal.IsZero() || principal.IsNegative() {
		return Loan{}, ErrInvalidPrincipal
	}
	if ratePct.IsNegative() {
		return Loan{}, ErrInvalidInterestRate
	}
	if installments < 1 {
		return Loan{}, ErrInvalidInstallments
	}
	if err := date.Validate(); err != nil {
		return Loan{}, err
	}

	total := principal.Mul(decimal.NewFromInt(1).Add(ratePct.Div(hundred)))
	return Loan{
		Name:              strings.TrimSpace(name),
		Direction:         direction,
		Principal:         principal,
		RatePct:           ratePct,
		Total:             total,
		TotalInstallments: installments,
		InstallmentsPaid:  0,
		Installment:       total.DivParts(int64(installments)),
		Date:              date,
		Status:            StatusActive,
		Notes:             notes,
	}, nil
}

func (l Loan) RemainingInstallments() int {
	return l.TotalInstallments - l.InstallmentsPaid
}

// RemainingBalance is the amount still owed over the open installments.
func (l Loan) RemainingBalance() Money {
	return l.Installment.MulInt(int64(l.RemainingInstallments()))
}

// PayInstallment records one installment. Settled is terminal: the loan
// flips to Settled exactly when the last installment is paid and can never
// become Active again.
func (l *Loan) PayInstallment() error {
	if l.Status != StatusActive || l.RemainingInstallments() == 0 {
		return ErrInvalidState
	}
	l.InstallmentsPaid++
	if l.InstallmentsPaid == l.TotalInstallments {
		l.Status = StatusSettled
	}
	return nil
}

// SettleRemaining force-pays the whole open balance in one move and returns
// the amount that was settled.
func (l *Loan) SettleRemaining() (Money, error) {
	if l.Status != StatusActive {
		return Money{}, ErrInvalidState
	}
	balance := l.RemainingBalance()
	l.InstallmentsPaid = l.TotalInstallments
	l.Status = StatusSettled
	return balance, nil
}

// LoanMetrics aggregates the loan book in both directions.
type LoanMetrics struct {
	TotalLent             Money `json:"total_lent"`
	TotalBorrowedReceived Money `json:"total_borrowed_received"`
	ReceivableOutstanding Money `json:"receivable_outstanding"`
	PayableOutstanding    Money `json:"payable_outstanding"`
	NetPosition           Money `json:"net_position"`
}

func ComputeLoanMetrics(loans []Loan) LoanMetrics {
	m := LoanMetrics{
		TotalLent:             MoneyZero(),
		TotalBorrowedReceived: MoneyZero(),
		ReceivableOutstanding: MoneyZero(),
		PayableOutstanding:    MoneyZero(),
	}
	for _, l := range loans {
		switch l.Direction {
		case DirectionLent:
			m.TotalLent = m.TotalLent.Add(l.Total)
			if l.Status == StatusActive {
				m.ReceivableOutstanding = m.ReceivableOutstanding.Add(l.RemainingBalance())
			}
		case DirectionBorrowed:
			m.TotalBorrowedReceived = m.TotalBorrowedReceived.Add(l.Principal)
			if l.Status == StatusActive {
				m.PayableOutstanding = m.PayableOutstanding.Add(l.RemainingBalance())
			}
		}
	}
	m.NetPosition = m.ReceivableOutstanding.Sub(m.PayableOutstanding)
	return m
}
