package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"registro/internal/core"
	"registro/internal/events"
	"registro/internal/ledger"
	"registro/internal/store"
)

// LoanService manages the loan book and mirrors borrowed-money movements into
// the family income ledger: the received principal, each repayment and the
// final settlement all show up as income postings under the loan's name.
type LoanService struct {
	loans   *ledger.LoanLedger
	incomes *IncomeService
	events  *events.Client
}

func NewLoanService(loans *ledger.LoanLedger, incomes *IncomeService, ev *events.Client) *LoanService {
	return &LoanService{loans: loans, incomes: incomes, events: ev}
}

// Create originates a loan. Borrowed loans additionally post the received
// principal into family income.
func (s *LoanService) Create(ctx context.Context, name string, direction core.LoanDirection, principal core.Money, ratePct decimal.Decimal, installments int, date core.Date, notes string) (core.Loan, error) {
	loan, err := core.NewLoan(name, direction, principal, ratePct, installments, date, notes)
	if err != nil {
		return core.Loan{}, err
	}
	loan.ID = uuid.NewString()

	if err := s.loans.Append(ctx, loan); err != nil {
		return core.Loan{}, err
	}
	slog.InfoContext(ctx, "Created loan",
		"id", loan.ID, "name", loan.Name, "direction", string(loan.Direction),
		"total", loan.Total.Fixed(), "installments", loan.TotalInstallments)
	publish(ctx, s.events, store.Loans.Name, events.ActionCreated, loan.ID)

	if loan.Direction == core.DirectionBorrowed {
		if _, err := s.incomes.Post(ctx, loan.Name, core.PostingLoanReceived, loan.Principal, date); err != nil {
			return core.Loan{}, err
		}
	}
	return loan, nil
}

// PayInstallment records one installment payment on the given date. Borrowed
// loans post the installment amount into family income.
func (s *LoanService) PayInstallment(ctx context.Context, id string, date core.Date) (core.Loan, error) {
	loan, err := s.loans.Get(ctx, id)
	if err != nil {
		return core.Loan{}, err
	}
	if err := loan.PayInstallment(); err != nil {
		return core.Loan{}, err
	}
	if err := s.loans.Update(ctx, loan); err != nil {
		return core.Loan{}, err
	}
	slog.InfoContext(ctx, "Paid loan installment",
		"id", loan.ID, "name", loan.Name,
		"paid", loan.InstallmentsPaid, "total", loan.TotalInstallments,
		"status", string(loan.Status))
	publish(ctx, s.events, store.Loans.Name, events.ActionUpdated, loan.ID)

	if loan.Direction == core.DirectionBorrowed {
		if _, err := s.incomes.Post(ctx, loan.Name, core.PostingLoanPayment, loan.Installment, date); err != nil {
			return core.Loan{}, err
		}
	}
	return loan, nil
}

// Settle pays the whole remaining balance in one move. Borrowed loans post
// the settled balance into family income.
func (s *LoanService) Settle(ctx context.Context, id string, date core.Date) (core.Loan, error) {
	loan, err := s.loans.Get(ctx, id)
	if err != nil {
		return core.Loan{}, err
	}
	balance, err := loan.SettleRemaining()
	if err != nil {
		return core.Loan{}, err
	}
	if err := s.loans.Update(ctx, loan); err != nil {
		return core.Loan{}, err
	}
	slog.InfoContext(ctx, "Settled loan",
		"id", loan.ID, "name", loan.Name, "balance", balance.Fixed())
	publish(ctx, s.events, store.Loans.Name, events.ActionUpdated, loan.ID)

	if loan.Direction == core.DirectionBorrowed && !balance.IsZero() {
		if _, err := s.incomes.Post(ctx, loan.Name, core.PostingLoanSettlement, balance, date); err != nil {
			return core.Loan{}, err
		}
	}
	return loan, nil
}

// Delete removes a loan from the book. Income postings it produced stay in
// the family ledger: money that moved, moved.
func (s *LoanService) Delete(ctx context.Context, id string) error {
	if err := s.loans.DeleteByID(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, store.Loans.Name, events.ActionDeleted, id)
	return nil
}

func (s *LoanService) List(ctx context.Context) ([]core.Loan, error) {
	return s.loans.All(ctx)
}

func (s *LoanService) Metrics(ctx context.Context) (core.LoanMetrics, error) {
	loans, err := s.loans.All(ctx)
	if err != nil {
		return core.LoanMetrics{}, err
	}
	return core.ComputeLoanMetrics(loans), nil
}

func (s *LoanService) Refresh() {
	s.loans.Invalidate()
}
