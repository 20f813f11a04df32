package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WeekSummary is one row of the weekly freelance roll-up.
type WeekSummary struct {
	Week             string          `json:"week"`
	From             Date            `json:"from"`
	To               Date            `json:"to"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	TotalUSD         Money           `json:"total_usd"`
	TotalAdjustedUSD Money           `json:"total_adjusted_usd"`
	TotalBRL         Money           `json:"total_brl"`
	TotalAdjustedBRL Money           `json:"total_adjusted_brl"`
}

// Period renders the week span as "min a max" calendar dates.
func (w WeekSummary) Period() string {
	return w.From.String() + " a " + w.To.String()
}

// WeeklySummary groups freelance entries by their week label, keeping labels
// in first-appearance order.
func WeeklySummary(entries []FreelanceEntry) []WeekSummary {
	var order []string
	byWeek := make(map[string]*WeekSummary)

	for _, e := range entries {
		row, ok := byWeek[e.Week]
		if !ok {
			row = &WeekSummary{
				Week:             e.Week,
				From:             e.Date,
				To:               e.Date,
				TotalUSD:         MoneyZero(),
				TotalAdjustedUSD: MoneyZero(),
				TotalBRL:         MoneyZero(),
				TotalAdjustedBRL: MoneyZero(),
			}
			byWeek[e.Week] = row
			order = append(order, e.Week)
		}
		if e.Date.Before(row.From.Time) {
			row.From = e.Date
		}
		if e.Date.After(row.To.Time) {
			row.To = e.Date
		}
		row.TotalHours = row.TotalHours.Add(e.Hours)
		row.TotalUSD = row.TotalUSD.Add(e.NominalUSD)
		row.TotalAdjustedUSD = row.TotalAdjustedUSD.Add(e.AdjustedUSD)
		row.TotalBRL = row.TotalBRL.Add(e.NominalBRL)
		row.TotalAdjustedBRL = row.TotalAdjustedBRL.Add(e.AdjustedBRL)
	}

	rows := make([]WeekSummary, 0, len(order))
	for _, week := range order {
		rows = append(rows, *byWeek[week])
	}
	return rows
}

// LargestWeek picks the row with the highest adjusted BRL total, ties broken
// by first occurrence. Used for display highlighting.
func LargestWeek(rows []WeekSummary) (WeekSummary, bool) {
	if len(rows) == 0 {
		return WeekSummary{}, false
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.TotalAdjustedBRL.Cmp(best.TotalAdjustedBRL) > 0 {
			best = row
		}
	}
	return best, true
}

// QualityPoint is the mean quality score for one week label.
type QualityPoint struct {
	Week      string          `json:"week"`
	MeanScore decimal.Decimal `json:"mean_score"`
}

// QualityTrend computes the per-week mean quality score, labels in
// first-appearance order, two decimal places.
func QualityTrend(entries []FreelanceEntry) []QualityPoint {
	var order []string
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)

	for _, e := range entries {
		if _, ok := counts[e.Week]; !ok {
			order = append(order, e.Week)
		}
		sums[e.Week] = sums[e.Week].Add(decimal.NewFromInt(int64(e.Score)))
		counts[e.Week]++
	}

	points := make([]QualityPoint, 0, len(order))
	for _, week := range order {
		points = append(points, QualityPoint{
			Week:      week,
			MeanScore: sums[week].DivRound(decimal.NewFromInt(counts[week]), 2),
		})
	}
	return points
}

// MonthRollup is one row of the monthly freelance-vs-CLT comparison.
type MonthRollup struct {
	Month            string `json:"month"` // YYYY-MM
	FreelancePaid    Money  `json:"freelance_paid"`
	FreelancePending Money  `json:"freelance_pending"`
	CLT              Money  `json:"clt"`
}

// MonthlyRollup merges freelance adjusted earnings (split by paid flag) with
// CLT income by month. Outer join: months present in only one source still
// appear, missing side zero. Ascending by month key.
func MonthlyRollup(freelance []FreelanceEntry, family []IncomeEntry) []MonthRollup {
	byMonth := make(map[string]*MonthRollup)
	row := func(month string) *MonthRollup {
		r, ok := byMonth[month]
		if !ok {
			r = &MonthRollup{
				Month:            month,
				FreelancePaid:    MoneyZero(),
				FreelancePending: MoneyZero(),
				CLT:              MoneyZero(),
			}
			byMonth[month] = r
		}
		return r
	}

	for _, e := range freelance {
		r := row(e.Date.MonthKey())
		if e.Paid {
			r.FreelancePaid = r.FreelancePaid.Add(e.AdjustedBRL)
		} else {
			r.FreelancePending = r.FreelancePending.Add(e.AdjustedBRL)
		}
	}
	for _, e := range family {
		if !e.Kind().IsCLT() {
			continue
		}
		r := row(e.Date.MonthKey())
		r.CLT = r.CLT.Add(e.Value)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	rows := make([]MonthRollup, 0, len(months))
	for _, month := range months {
		rows = append(rows, *byMonth[month])
	}
	return rows
}

// Totals separates realized cash from the forecast that includes still-unpaid
// freelance work.
type Totals struct {
	Effective Money `json:"effective"`
	Projected Money `json:"projected"`
}

// EffectiveTotal sums every family income row plus paid freelance earnings;
// projected adds the pending freelance earnings on top.
func EffectiveTotal(family []IncomeEntry, freelance []FreelanceEntry) Totals {
	effective := MoneyZero()
	for _, e := range family {
		effective = effective.Add(e.Value)
	}
	pending := MoneyZero()
	for _, e := range freelance {
		if e.Paid {
			effective = effective.Add(e.AdjustedBRL)
		} else {
			pending = pending.Add(e.AdjustedBRL)
		}
	}
	return Totals{Effective: effective, Projected: effective.Add(pending)}
}

// CategoryTotal is one row of the expense breakdown.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// CategoryBreakdown sums expenses per category, descending by total; equal
// totals keep first-appearance order.
func CategoryBreakdown(expenses []ExpenseEntry) []CategoryTotal {
	var order []string
	sums := make(map[string]Money)
	for _, e := range expenses {
		if _, ok := sums[e.Category]; !ok {
			order = append(order, e.Category)
			sums[e.Category] = MoneyZero()
		}
		sums[e.Category] = sums[e.Category].Add(e.Value)
	}

	rows := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		rows = append(rows, CategoryTotal{Category: category, Total: sums[category]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.Cmp(rows[j].Total) > 0
	})
	return rows
}

// PivotRow is one category line of the member/category expense matrix.
type PivotRow struct {
	Category string           `json:"category"`
	ByMember map[string]Money `json:"by_member"`
}

// MemberCategoryPivot builds the [category x member] sum matrix restricted to
// the given household members. Every cell exists; missing combinations are
// zero. Categories sorted ascending.
func MemberCategoryPivot(expenses []ExpenseEntry, members []string) []PivotRow {
	allowed := make(map[string]bool, len(members))
	for _, m := range members {
		allowed[m] = true
	}

	byCategory := make(map[string]map[string]Money)
	for _, e := range expenses {
		if !allowed[e.Member] {
			continue
		}
		cells, ok := byCategory[e.Category]
		if !ok {
			cells = make(map[string]Money, len(members))
			for _, m := range members {
				cells[m] = MoneyZero()
			}
			byCategory[e.Category] = cells
		}
		cells[e.Member] = cells[e.Member].Add(e.Value)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	rows := make([]PivotRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, PivotRow{Category: category, ByMember: byCategory[category]})
	}
	return rows
}

// InvestmentSummary totals the investment ledger.
type InvestmentSummary struct {
	Invested Money `json:"invested"`
	Yield    Money `json:"yield"`
	Balance  Money `json:"balance"`
}

func SummarizeInvestments(entries []InvestmentEntry) InvestmentSummary {
	s := InvestmentSummary{Invested: MoneyZero(), Yield: MoneyZero()}
	for _, e := range entries {
		s.Invested = s.Invested.Add(e.Value)
		s.Yield = s.Yield.Add(e.Yield)
	}
	s.Balance = s.Invested.Add(s.Yield)
	return s
}
