package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"registro/internal/core"
	"registro/internal/events"
	"registro/internal/ledger"
	"registro/internal/store"
)

// ExpenseService manages the expense ledger.
type ExpenseService struct {
	expenses *ledger.ExpenseLedger
	events   *events.Client
}

func NewExpenseService(expenses *ledger.ExpenseLedger, ev *events.Client) *ExpenseService {
	return &ExpenseService{expenses: expenses, events: ev}
}

func (s *ExpenseService) Add(ctx context.Context, member, category string, value core.Money, date core.Date) (core.ExpenseEntry, error) {
	entry := core.ExpenseEntry{
		ID:       uuid.NewString(),
		Member:   strings.TrimSpace(member),
		Category: strings.TrimSpace(category),
		Value:    value,
		Date:     date,
	}
	if err := entry.Validate(); err != nil {
		return core.ExpenseEntry{}, err
	}
	if err := s.expenses.Append(ctx, entry); err != nil {
		return core.ExpenseEntry{}, err
	}
	publish(ctx, s.events, store.Expenses.Name, events.ActionCreated, entry.ID)
	return entry, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.expenses.DeleteByID(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, store.Expenses.Name, events.ActionDeleted, id)
	return nil
}

func (s *ExpenseService) List(ctx context.Context) ([]core.ExpenseEntry, error) {
	return s.expenses.All(ctx)
}

func (s *ExpenseService) Refresh() {
	s.expenses.Invalidate()
}
