package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"registro/internal/core"
	"registro/internal/ledger"
)

// ReportService builds the read-side aggregations over the ledgers. Loads
// that span several ledgers run in parallel.
type ReportService struct {
	freelance   *ledger.FreelanceLedger
	incomes     *ledger.IncomeLedger
	expenses    *ledger.ExpenseLedger
	investments *ledger.InvestmentLedger
	members     []string
}

func NewReportService(freelance *ledger.FreelanceLedger, incomes *ledger.IncomeLedger, expenses *ledger.ExpenseLedger, investments *ledger.InvestmentLedger, members []string) *ReportService {
	return &ReportService{
		freelance:   freelance,
		incomes:     incomes,
		expenses:    expenses,
		investments: investments,
		members:     members,
	}
}

// WeeklyReport pairs the per-week roll-up with the best week, when any.
type WeeklyReport struct {
	Weeks       []core.WeekSummary `json:"weeks"`
	LargestWeek *core.WeekSummary  `json:"largest_week,omitempty"`
}

func (s *ReportService) Weekly(ctx context.Context) (WeeklyReport, error) {
	entries, err := s.freelance.All(ctx)
	if err != nil {
		return WeeklyReport{}, err
	}
	report := WeeklyReport{Weeks: core.WeeklySummary(entries)}
	if best, ok := core.LargestWeek(report.Weeks); ok {
		report.LargestWeek = &best
	}
	return report, nil
}

func (s *ReportService) Quality(ctx context.Context) ([]core.QualityPoint, error) {
	entries, err := s.freelance.All(ctx)
	if err != nil {
		return nil, err
	}
	return core.QualityTrend(entries), nil
}

// loadIncomeInputs fetches the freelance and family ledgers concurrently.
func (s *ReportService) loadIncomeInputs(ctx context.Context) ([]core.FreelanceEntry, []core.IncomeEntry, error) {
	var (
		freelance []core.FreelanceEntry
		family    []core.IncomeEntry
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		freelance, err = s.freelance.All(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		family, err = s.incomes.All(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return freelance, family, nil
}

func (s *ReportService) Rollup(ctx context.Context) ([]core.MonthRollup, error) {
	freelance, family, err := s.loadIncomeInputs(ctx)
	if err != nil {
		return nil, err
	}
	return core.MonthlyRollup(freelance, family), nil
}

func (s *ReportService) Totals(ctx context.Context) (core.Totals, error) {
	freelance, family, err := s.loadIncomeInputs(ctx)
	if err != nil {
		return core.Totals{}, err
	}
	return core.EffectiveTotal(family, freelance), nil
}

// filterExpensesByMonth keeps entries of the given YYYY-MM month; an empty
// month keeps everything.
func filterExpensesByMonth(entries []core.ExpenseEntry, month string) []core.ExpenseEntry {
	if month == "" {
		return entries
	}
	kept := make([]core.ExpenseEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date.MonthKey() == month {
			kept = append(kept, e)
		}
	}
	return kept
}

func (s *ReportService) Categories(ctx context.Context, month string) ([]core.CategoryTotal, error) {
	entries, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}
	return core.CategoryBreakdown(filterExpensesByMonth(entries, month)), nil
}

func (s *ReportService) Pivot(ctx context.Context, month string) ([]core.PivotRow, error) {
	entries, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}
	return core.MemberCategoryPivot(filterExpensesByMonth(entries, month), s.members), nil
}

func (s *ReportService) Investments(ctx context.Context) (core.InvestmentSummary, error) {
	entries, err := s.investments.All(ctx)
	if err != nil {
		return core.InvestmentSummary{}, err
	}
	return core.SummarizeInvestments(entries), nil
}

// IncomeFilter narrows the income listing. Zero values match everything.
type IncomeFilter struct {
	Member string
	Type   string
	Month  string // YYYY-MM
}

func (f IncomeFilter) matches(e core.IncomeEntry) bool {
	if f.Member != "" && !strings.EqualFold(e.Member, f.Member) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(e.Type, f.Type) {
		return false
	}
	if f.Month != "" && e.Date.MonthKey() != f.Month {
		return false
	}
	return true
}

// FilteredIncome holds the matching entries and their summed value.
type FilteredIncome struct {
	Entries []core.IncomeEntry `json:"entries"`
	Total   core.Money         `json:"total"`
}

func (s *ReportService) Income(ctx context.Context, filter IncomeFilter) (FilteredIncome, error) {
	entries, err := s.incomes.All(ctx)
	if err != nil {
		return FilteredIncome{}, err
	}
	out := FilteredIncome{Entries: []core.IncomeEntry{}, Total: core.MoneyZero()}
	for _, e := range entries {
		if filter.matches(e) {
			out.Entries = append(out.Entries, e)
			out.Total = out.Total.Add(e.Value)
		}
	}
	return out, nil
}
