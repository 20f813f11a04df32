// Package services wires the typed ledgers into the application operations:
// recording entries, amortizing loans, posting income and building reports.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"registro/internal/core"
	"registro/internal/events"
	"registro/internal/ledger"
	"registro/internal/store"
)

// FreelanceService manages the freelance hours ledger.
type FreelanceService struct {
	entries *ledger.FreelanceLedger
	events  *events.Client
}

func NewFreelanceService(entries *ledger.FreelanceLedger, ev *events.Client) *FreelanceService {
	return &FreelanceService{entries: entries, events: ev}
}

// publish is best effort: a broker outage never fails the write it narrates.
func publish(ctx context.Context, ev *events.Client, table, action, id string) {
	if err := ev.Publish(ctx, table, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"ledger", table, "action", action, "id", id, "error", err)
	}
}

// Record computes earnings for a worked week and appends the entry.
func (s *FreelanceService) Record(ctx context.Context, date core.Date, hours, rate decimal.Decimal, week string, score core.QualityScore, paid bool) (core.FreelanceEntry, error) {
	earnings := core.ComputeEarnings(hours, rate, score)
	entry := core.FreelanceEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Hours:       hours,
		Rate:        rate,
		Week:        week,
		Score:       score,
		NominalUSD:  earnings.NominalUSD,
		NominalBRL:  earnings.NominalBRL,
		AdjustedUSD: earnings.AdjustedUSD,
		AdjustedBRL: earnings.AdjustedBRL,
		Paid:        paid,
	}
	if err := entry.Validate(); err != nil {
		return core.FreelanceEntry{}, err
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		return core.FreelanceEntry{}, err
	}

	slog.InfoContext(ctx, "Recorded freelance entry",
		"id", entry.ID, "week", week, "hours", hours.String(), "score", int(score))
	publish(ctx, s.events, store.Freelance.Name, events.ActionCreated, entry.ID)
	return entry, nil
}

// Regrade rewrites the quality score of one entry. The nominal values and the
// paid flag survive untouched; only the adjusted fields are recomputed.
func (s *FreelanceService) Regrade(ctx context.Context, id string, score core.QualityScore) (core.FreelanceEntry, error) {
	if err := score.Validate(); err != nil {
		return core.FreelanceEntry{}, err
	}

	entries, err := s.entries.All(ctx)
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	updated := core.FreelanceEntry{}
	found := false
	for i, e := range entries {
		if e.ID == id {
			entries[i] = e.Reapply(score)
			updated = entries[i]
			found = true
			break
		}
	}
	if !found {
		return core.FreelanceEntry{}, fmt.Errorf("freelance entry %s: %w", id, store.ErrNotFound)
	}

	if err := s.entries.ReplaceAll(ctx, entries); err != nil {
		return core.FreelanceEntry{}, err
	}
	slog.InfoContext(ctx, "Regraded freelance entry", "id", id, "score", int(score))
	publish(ctx, s.events, store.Freelance.Name, events.ActionUpdated, id)
	return updated, nil
}

// MarkPaid flips the paid flag of one entry.
func (s *FreelanceService) MarkPaid(ctx context.Context, id string, paid bool) (core.FreelanceEntry, error) {
	entries, err := s.entries.All(ctx)
	if err != nil {
		return core.FreelanceEntry{}, err
	}
	updated := core.FreelanceEntry{}
	found := false
	for i, e := range entries {
		if e.ID == id {
			entries[i].Paid = paid
			updated = entries[i]
			found = true
			break
		}
	}
	if !found {
		return core.FreelanceEntry{}, fmt.Errorf("freelance entry %s: %w", id, store.ErrNotFound)
	}

	if err := s.entries.ReplaceAll(ctx, entries); err != nil {
		return core.FreelanceEntry{}, err
	}
	publish(ctx, s.events, store.Freelance.Name, events.ActionUpdated, id)
	return updated, nil
}

func (s *FreelanceService) Delete(ctx context.Context, id string) error {
	if err := s.entries.DeleteByID(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.events, store.Freelance.Name, events.ActionDeleted, id)
	return nil
}

func (s *FreelanceService) List(ctx context.Context) ([]core.FreelanceEntry, error) {
	return s.entries.All(ctx)
}

// Refresh drops any cached view of the hours ledger.
func (s *FreelanceService) Refresh() {
	s.entries.Invalidate()
}
