package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Money is an exact monetary value. All arithmetic goes through decimal so
// rate conversions and installment splits never accumulate binary-float drift.
type Money struct {
	Amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{Amount: amount}
}

func MoneyZero() Money {
	return Money{Amount: decimal.Zero}
}

func MoneyFromInt(v int64) Money {
	return Money{Amount: decimal.NewFromInt(v)}
}

// ParseMoney accepts both dot (12.34) and comma (12,34) decimal separators.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{Amount: d}, nil
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount)}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount.Sub(o.Amount)}
}

func (m Money) Mul(f decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(f)}
}

func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(n))}
}

// DivParts splits the value into n equal parts, rounded to cents.
func (m Money) DivParts(n int64) Money {
	return Money{Amount: m.Amount.DivRound(decimal.NewFromInt(n), 2)}
}

func (m Money) Cmp(o Money) int {
	return m.Amount.Cmp(o.Amount)
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) String() string {
	return m.Amount.String()
}

// Fixed returns the value with exactly two decimal places for display.
func (m Money) Fixed() string {
	return m.Amount.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.Amount.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Amount.UnmarshalJSON(data)
}
