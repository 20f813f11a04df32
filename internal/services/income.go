package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"registro/internal/core"
	"registro/internal/events"
	"registro/internal/ledger"
	"registro/internal/store"
)

// Paycheck posting days of the month: salary on the 5th, stipend on the 20th.
const (
	salaryDay  = 5
	stipendDay = 20
)

// IncomeService manages the family income ledger, including the structured
// CLT paycheck registration used month after month.
type IncomeService struct {
	incomes *ledger.IncomeLedger
	events  *events.Client
}

func NewIncomeService(incomes *ledger.IncomeLedger, ev *events.Client) *IncomeService {
	return &IncomeService{incomes: incomes, events: ev}
}

// Post appends one free-form income entry.
func (s *IncomeService) Post(ctx context.Context, member, incomeType string, value core.Money, date core.Date) (core.IncomeEntry, error) {
	entry := core.IncomeEntry{
		ID:     uuid.NewString(),
		Member: strings.TrimSpace(member),
		Type:   strings.TrimSpace(incomeType),
		Value:  value,
		Date:   date,
	}
	if err := entry.Validate(); err != nil {
		return core.IncomeEntry{}, err
	}
	if err := s.incomes.Append(ctx, entry); err != nil {
		return core.IncomeEntry{}, err
	}
	publish(ctx, s.events, store.FamilyIncome.Name, events.ActionCreated, entry.ID)
	return entry, nil
}

// RegisterCLT posts the month's paycheck pair: salary on the 5th and stipend
// on the 20th. A month that already has a CLT posting of either kind is
// rejected wholesale, so the operation is safe to retry.
func (s *IncomeService) RegisterCLT(ctx context.Context, member string, salary, stipend core.Money, year, month int) ([]core.IncomeEntry, error) {
	existing, err := s.incomes.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if !e.Kind().IsCLT() {
			continue
		}
		if e.Date.Year() == year && int(e.Date.Month()) == month {
			return nil, core.ErrDuplicateEntry
		}
	}

	posted := make([]core.IncomeEntry, 0, 2)
	for _, p := range []struct {
		incomeType string
		value      core.Money
		day        int
	}{
		{core.TypeSalario, salary, salaryDay},
		{core.TypeVale, stipend, stipendDay},
	} {
		// A component the month does not have, a zero stipend say, is
		// skipped rather than posted as a zero row.
		if p.value.IsZero() {
			continue
		}
		entry, err := s.Post(ctx, member, p.incomeType, p.value, core.NewDate(year, month, p.day))
		if err != nil {
			return nil, err
		}
		posted = append(posted, entry)
	}

	slog.InfoContext(ctx, "Registered CLT paychecks",
		"member", member, "year", year, "month", month, "entries", len(posted))
	return posted, nil
}

func (s *IncomeService) Delete(ctx context.Context, id string) error {
	if err := s.incomes.DeleteByID(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, store.FamilyIncome.Name, events.ActionDeleted, id)
	return nil
}

func (s *IncomeService) List(ctx context.Context) ([]core.IncomeEntry, error) {
	return s.incomes.All(ctx)
}

func (s *IncomeService) Refresh() {
	s.incomes.Invalidate()
}
