package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func freelanceFixture(week string, date Date, hours int64, score QualityScore, paid bool) FreelanceEntry {
	e := FreelanceEntry{
		Date:  date,
		Hours: decimal.NewFromInt(hours),
		Rate:  decimal.NewFromInt(5),
		Week:  week,
		Score: score,
		Paid:  paid,
	}
	earnings := ComputeEarnings(e.Hours, e.Rate, score)
	e.NominalUSD = earnings.NominalUSD
	e.NominalBRL = earnings.NominalBRL
	e.AdjustedUSD = earnings.AdjustedUSD
	e.AdjustedBRL = earnings.AdjustedBRL
	return e
}

func TestWeeklySummaryOrderAndTotals(t *testing.T) {
	entries := []FreelanceEntry{
		freelanceFixture("Semana 2", NewDate(2025, 3, 10), 10, 3, false),
		freelanceFixture("Semana 1", NewDate(2025, 3, 3), 8, 4, true),
		freelanceFixture("Semana 2", NewDate(2025, 3, 12), 5, 3, false),
	}

	rows := WeeklySummary(entries)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// First-appearance order, not alphabetical.
	if rows[0].Week != "Semana 2" || rows[1].Week != "Semana 1" {
		t.Errorf("week order = [%s, %s], want [Semana 2, Semana 1]", rows[0].Week, rows[1].Week)
	}

	if got, want := rows[0].TotalHours.String(), "15"; got != want {
		t.Errorf("Semana 2 hours = %s, want %s", got, want)
	}
	// 15h * 30 USD * rate 5, score 3 pays in full.
	if got, want := rows[0].TotalAdjustedBRL.String(), "2250"; got != want {
		t.Errorf("Semana 2 adjusted BRL = %s, want %s", got, want)
	}
	if got, want := rows[0].Period(), "2025-03-10 a 2025-03-12"; got != want {
		t.Errorf("Period = %q, want %q", got, want)
	}
}

func TestLargestWeek(t *testing.T) {
	if _, ok := LargestWeek(nil); ok {
		t.Error("LargestWeek of no rows should report not found")
	}

	entries := []FreelanceEntry{
		freelanceFixture("Semana 1", NewDate(2025, 3, 3), 10, 3, false),
		freelanceFixture("Semana 2", NewDate(2025, 3, 10), 20, 3, false),
		freelanceFixture("Semana 3", NewDate(2025, 3, 17), 20, 3, false),
	}
	best, ok := LargestWeek(WeeklySummary(entries))
	if !ok {
		t.Fatal("expected a largest week")
	}
	// Tie between Semana 2 and 3 resolves to the first occurrence.
	if best.Week != "Semana 2" {
		t.Errorf("largest week = %s, want Semana 2", best.Week)
	}
}

func TestQualityTrend(t *testing.T) {
	entries := []FreelanceEntry{
		freelanceFixture("Semana 1", NewDate(2025, 3, 3), 1, 4, false),
		freelanceFixture("Semana 1", NewDate(2025, 3, 4), 1, 3, false),
		freelanceFixture("Semana 2", NewDate(2025, 3, 10), 1, 2, false),
	}

	points := QualityTrend(entries)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if got, want := points[0].MeanScore.String(), "3.5"; got != want {
		t.Errorf("Semana 1 mean = %s, want %s", got, want)
	}
	if got, want := points[1].MeanScore.String(), "2"; got != want {
		t.Errorf("Semana 2 mean = %s, want %s", got, want)
	}
}

func TestMonthlyRollupOuterJoin(t *testing.T) {
	freelance := []FreelanceEntry{
		freelanceFixture("Semana 1", NewDate(2025, 1, 10), 10, 3, true),  // paid 1500
		freelanceFixture("Semana 2", NewDate(2025, 1, 20), 10, 3, false), // pending 1500
		freelanceFixture("Semana 9", NewDate(2025, 3, 5), 2, 3, true),    // paid 300
	}
	family := []IncomeEntry{
		{Member: "Adhara", Type: TypeSalario, Value: MoneyFromInt(3000), Date: NewDate(2025, 1, 5)},
		{Member: "Adhara", Type: TypeVale, Value: MoneyFromInt(800), Date: NewDate(2025, 2, 20)},
		{Member: "Sara", Type: "Freelance", Value: MoneyFromInt(999), Date: NewDate(2025, 2, 1)}, // not CLT
	}

	rows := MonthlyRollup(freelance, family)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].Month != "2025-01" || rows[1].Month != "2025-02" || rows[2].Month != "2025-03" {
		t.Fatalf("months = [%s, %s, %s], want ascending 2025-01..2025-03",
			rows[0].Month, rows[1].Month, rows[2].Month)
	}

	jan := rows[0]
	if got, want := jan.FreelancePaid.String(), "1500"; got != want {
		t.Errorf("jan paid = %s, want %s", got, want)
	}
	if got, want := jan.FreelancePending.String(), "1500"; got != want {
		t.Errorf("jan pending = %s, want %s", got, want)
	}
	if got, want := jan.CLT.String(), "3000"; got != want {
		t.Errorf("jan CLT = %s, want %s", got, want)
	}

	// February has no freelance at all; the row still exists, zero filled.
	feb := rows[1]
	if !feb.FreelancePaid.IsZero() || !feb.FreelancePending.IsZero() {
		t.Error("feb freelance columns should be zero")
	}
	if got, want := feb.CLT.String(), "800"; got != want {
		t.Errorf("feb CLT = %s, want %s", got, want)
	}

	// March has freelance but no CLT income.
	mar := rows[2]
	if !mar.CLT.IsZero() {
		t.Error("mar CLT should be zero")
	}
	if got, want := mar.FreelancePaid.String(), "300"; got != want {
		t.Errorf("mar paid = %s, want %s", got, want)
	}
}

func TestEffectiveTotal(t *testing.T) {
	family := []IncomeEntry{
		{Member: "Adhara", Type: TypeSalario, Value: MoneyFromInt(3000), Date: NewDate(2025, 1, 5)},
		{Member: "Breno", Type: PostingLoanPayment, Value: MoneyFromInt(200), Date: NewDate(2025, 1, 8)},
	}
	freelance := []FreelanceEntry{
		freelanceFixture("Semana 1", NewDate(2025, 1, 10), 10, 3, true),  // 1500 paid
		freelanceFixture("Semana 2", NewDate(2025, 1, 20), 10, 3, false), // 1500 pending
	}

	totals := EffectiveTotal(family, freelance)
	if got, want := totals.Effective.String(), "4700"; got != want {
		t.Errorf("Effective = %s, want %s", got, want)
	}
	if got, want := totals.Projected.String(), "6200"; got != want {
		t.Errorf("Projected = %s, want %s", got, want)
	}
}

func TestCategoryBreakdownDescending(t *testing.T) {
	expenses := []ExpenseEntry{
		{Member: "Adhara", Category: "Mercado", Value: MoneyFromInt(100), Date: NewDate(2025, 1, 2)},
		{Member: "Breno", Category: "Aluguel", Value: MoneyFromInt(900), Date: NewDate(2025, 1, 5)},
		{Member: "Sara", Category: "Mercado", Value: MoneyFromInt(150), Date: NewDate(2025, 1, 9)},
		{Member: "Sara", Category: "Lazer", Value: MoneyFromInt(250), Date: NewDate(2025, 1, 12)},
	}

	rows := CategoryBreakdown(expenses)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Category != "Aluguel" || rows[1].Category != "Mercado" || rows[2].Category != "Lazer" {
		t.Errorf("category order = [%s, %s, %s], want [Aluguel, Mercado, Lazer]",
			rows[0].Category, rows[1].Category, rows[2].Category)
	}
	if got, want := rows[1].Total.String(), "250"; got != want {
		t.Errorf("Mercado total = %s, want %s", got, want)
	}
}

func TestMemberCategoryPivot(t *testing.T) {
	members := []string{"Adhara", "Breno"}
	expenses := []ExpenseEntry{
		{Member: "Adhara", Category: "Mercado", Value: MoneyFromInt(100), Date: NewDate(2025, 1, 2)},
		{Member: "Breno", Category: "Aluguel", Value: MoneyFromInt(900), Date: NewDate(2025, 1, 5)},
		{Member: "Visita", Category: "Mercado", Value: MoneyFromInt(999), Date: NewDate(2025, 1, 9)}, // not whitelisted
	}

	rows := MemberCategoryPivot(expenses, members)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Categories ascending.
	if rows[0].Category != "Aluguel" || rows[1].Category != "Mercado" {
		t.Errorf("category order = [%s, %s], want [Aluguel, Mercado]", rows[0].Category, rows[1].Category)
	}
	// Every whitelisted member has a cell, zero when absent.
	aluguel := rows[0].ByMember
	if got, want := aluguel["Breno"].String(), "900"; got != want {
		t.Errorf("Aluguel/Breno = %s, want %s", got, want)
	}
	if !aluguel["Adhara"].IsZero() {
		t.Errorf("Aluguel/Adhara = %s, want 0", aluguel["Adhara"].String())
	}
	// The non-whitelisted member never shows up.
	mercado := rows[1].ByMember
	if _, ok := mercado["Visita"]; ok {
		t.Error("non-whitelisted member must not appear in the pivot")
	}
	if got, want := mercado["Adhara"].String(), "100"; got != want {
		t.Errorf("Mercado/Adhara = %s, want %s", got, want)
	}
}

func TestSummarizeInvestments(t *testing.T) {
	entries := []InvestmentEntry{
		{Member: "Adhara", Type: "CDB", Value: MoneyFromInt(1000), Date: NewDate(2025, 1, 2), Yield: MoneyFromInt(50)},
		{Member: "Breno", Type: "Tesouro", Value: MoneyFromInt(500), Date: NewDate(2025, 2, 2), Yield: MoneyFromInt(-20)},
	}

	s := SummarizeInvestments(entries)
	if got, want := s.Invested.String(), "1500"; got != want {
		t.Errorf("Invested = %s, want %s", got, want)
	}
	if got, want := s.Yield.String(), "30"; got != want {
		t.Errorf("Yield = %s, want %s", got, want)
	}
	if got, want := s.Balance.String(), "1530"; got != want {
		t.Errorf("Balance = %s, want %s", got, want)
	}
}
