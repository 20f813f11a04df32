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

// InvestmentService manages the investment ledger.
type InvestmentService struct {
	investments *ledger.InvestmentLedger
	events      *events.Client
}

func NewInvestmentService(investments *ledger.InvestmentLedger, ev *events.Client) *InvestmentService {
	return &InvestmentService{investments: investments, events: ev}
}

func (s *InvestmentService) Add(ctx context.Context, member, investmentType string, value core.Money, date core.Date, yield core.Money) (core.InvestmentEntry, error) {
	entry := core.InvestmentEntry{
		ID:     uuid.NewString(),
		Member: strings.TrimSpace(member),
		Type:   strings.TrimSpace(investmentType),
		Value:  value,
		Date:   date,
		Yield:  yield,
	}
	if err := entry.Validate(); err != nil {
		return core.InvestmentEntry{}, err
	}
	if err := s.investments.Append(ctx, entry); err != nil {
		return core.InvestmentEntry{}, err
	}
	publish(ctx, s.events, store.Investments.Name, events.ActionCreated, entry.ID)
	return entry, nil
}

func (s *InvestmentService) Delete(ctx context.Context, id string) error {
	if err := s.investments.DeleteByID(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, store.Investments.Name, events.ActionDeleted, id)
	return nil
}

func (s *InvestmentService) List(ctx context.Context) ([]core.InvestmentEntry, error) {
	return s.investments.All(ctx)
}

func (s *InvestmentService) Refresh() {
	s.investments.Invalidate()
}
