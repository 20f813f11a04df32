package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAdjust(t *testing.T) {
	base := MoneyFromInt(100)

	tests := []struct {
		name     string
		score    QualityScore
		expected string
	}{
		{"excellent pays 20 percent bonus", 4, "120"},
		{"good pays in full", 3, "100"},
		{"partial pays half", 2, "50"},
		{"unusable pays nothing", 1, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust(base, tt.score)
			want := decimal.RequireFromString(tt.expected)
			if !got.Amount.Equal(want) {
				t.Errorf("Adjust(100, %d) = %s, want %s", tt.score, got.String(), tt.expected)
			}
		})
	}
}

func TestComputeEarnings(t *testing.T) {
	hours := decimal.NewFromInt(10)
	rate := decimal.NewFromInt(5)

	e := ComputeEarnings(hours, rate, 4)

	if got, want := e.NominalUSD.String(), "300"; got != want {
		t.Errorf("NominalUSD = %s, want %s", got, want)
	}
	if got, want := e.NominalBRL.String(), "1500"; got != want {
		t.Errorf("NominalBRL = %s, want %s", got, want)
	}
	if got, want := e.AdjustedUSD.String(), "360"; got != want {
		t.Errorf("AdjustedUSD = %s, want %s", got, want)
	}
	if got, want := e.AdjustedBRL.String(), "1800"; got != want {
		t.Errorf("AdjustedBRL = %s, want %s", got, want)
	}
}

func TestReapplyPreservesNominalsAndPaid(t *testing.T) {
	entry := FreelanceEntry{
		ID:    "e1",
		Date:  NewDate(2025, 3, 10),
		Hours: decimal.NewFromInt(10),
		Rate:  decimal.NewFromInt(5),
		Week:  "Semana 1",
		Score: 4,
		Paid:  true,
	}
	earnings := ComputeEarnings(entry.Hours, entry.Rate, entry.Score)
	entry.NominalUSD = earnings.NominalUSD
	entry.NominalBRL = earnings.NominalBRL
	entry.AdjustedUSD = earnings.AdjustedUSD
	entry.AdjustedBRL = earnings.AdjustedBRL

	regraded := entry.Reapply(2)

	if !regraded.NominalUSD.Equal(entry.NominalUSD) || !regraded.NominalBRL.Equal(entry.NominalBRL) {
		t.Error("regrade must not touch nominal values")
	}
	if !regraded.Paid {
		t.Error("regrade must not touch the paid flag")
	}
	if got, want := regraded.AdjustedUSD.String(), "150"; got != want {
		t.Errorf("AdjustedUSD after regrade = %s, want %s", got, want)
	}
	if got, want := regraded.AdjustedBRL.String(), "750"; got != want {
		t.Errorf("AdjustedBRL after regrade = %s, want %s", got, want)
	}

	// Re-grading back restores the original adjusted values exactly.
	restored := regraded.Reapply(4)
	if !restored.AdjustedUSD.Equal(entry.AdjustedUSD) || !restored.AdjustedBRL.Equal(entry.AdjustedBRL) {
		t.Error("regrading back to the original score must restore the adjusted values")
	}
}

func TestQualityScoreValidate(t *testing.T) {
	for _, score := range []QualityScore{1, 2, 3, 4} {
		if err := score.Validate(); err != nil {
			t.Errorf("score %d should be valid, got %v", score, err)
		}
	}
	for _, score := range []QualityScore{0, 5, -1} {
		if err := score.Validate(); err == nil {
			t.Errorf("score %d should be invalid", score)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		raw  string
		want IncomeKind
	}{
		{"Salário", KindSalary},
		{"salario", KindSalary},
		{" SALÁRIO ", KindSalary},
		{"Vale", KindStipend},
		{"vale", KindStipend},
		{"Freelance", KindOther},
		{"Empréstimo Recebido", KindOther},
		{"", KindOther},
	}
	for _, tt := range tests {
		if got := KindOf(tt.raw); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
