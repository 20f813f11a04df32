package core

import "github.com/shopspring/decimal"

// HourlyRateUSD is the fixed freelance billing rate.
var HourlyRateUSD = decimal.NewFromInt(30)

var (
	scoreExcellentFactor = decimal.RequireFromString("1.2")
	scorePartialFactor   = decimal.RequireFromString("0.5")
)

// Adjust applies the quality-score correction to a base value:
// 4 pays a 20% bonus, 3 pays in full, 2 pays half, anything else pays nothing.
// Callers constrain the score to {1,2,3,4} before getting here.
func Adjust(base Money, score QualityScore) Money {
	switch score {
	case 4:
		return base.Mul(scoreExcellentFactor)
	case 3:
		return base
	case 2:
		return base.Mul(scorePartialFactor)
	default:
		return MoneyZero()
	}
}

// Earnings holds the four monetary fields derived for a freelance entry.
type Earnings struct {
	NominalUSD  Money
	NominalBRL  Money
	AdjustedUSD Money
	AdjustedBRL Money
}

// ComputeEarnings derives nominal and quality-adjusted earnings in both
// currencies from worked hours, the exchange rate and the quality score.
func ComputeEarnings(hours, rate decimal.Decimal, score QualityScore) Earnings {
	nominalUSD := NewMoney(hours.Mul(HourlyRateUSD))
	adjustedUSD := Adjust(nominalUSD, score)
	return Earnings{
		NominalUSD:  nominalUSD,
		NominalBRL:  nominalUSD.Mul(rate),
		AdjustedUSD: adjustedUSD,
		AdjustedBRL: adjustedUSD.Mul(rate),
	}
}

// Reapply recomputes the adjusted fields of an entry for a new score. The
// nominal values and the paid flag are never touched by a re-grade.
func (e FreelanceEntry) Reapply(score QualityScore) FreelanceEntry {
	adjustedUSD := Adjust(e.NominalUSD, score)
	e.Score = score
	e.AdjustedUSD = adjustedUSD
	e.AdjustedBRL = adjustedUSD.Mul(e.Rate)
	return e
}
