package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidHours   = errors.New("invalid hours")
	ErrInvalidRate    = errors.New("invalid exchange rate")
	ErrInvalidScore   = errors.New("invalid quality score")
	ErrEmptyMember    = errors.New("empty member")
	ErrEmptyCategory  = errors.New("empty category")
	ErrInvalidState   = errors.New("operation not allowed in current loan state")
	ErrDuplicateEntry = errors.New("entry already registered for this period")
)

// Reserved income type labels. Salário and Vale mark CLT paychecks; the loan
// ledger posts the three Empréstimo labels through the income poster.
const (
	TypeSalario = "Salário"
	TypeVale    = "Vale"

	PostingLoanReceived   = "Empréstimo Recebido"
	PostingLoanPayment    = "Pagamento Empréstimo"
	PostingLoanSettlement = "Quitação Empréstimo"
)

type Date struct {
	time.Time
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the calendar-date layout used across all ledgers.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the YYYY-MM grouping key for monthly roll-ups.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// QualityScore grades a freelance week from 1 (unusable) to 4 (excellent).
type QualityScore int

func (q QualityScore) Validate() error {
	if q < 1 || q > 4 {
		return ErrInvalidScore
	}
	return nil
}

// IncomeKind is the closed enumeration behind the free-text income type
// column. Normalization happens once, at the storage boundary, instead of
// case-insensitive string checks scattered through aggregation code.
type IncomeKind int

const (
	KindOther IncomeKind = iota
	KindSalary
	KindStipend
)

func KindOf(incomeType string) IncomeKind {
	switch strings.ToLower(strings.TrimSpace(incomeType)) {
	case "salário", "salario":
		return KindSalary
	case "vale":
		return KindStipend
	default:
		return KindOther
	}
}

// IsCLT reports whether the kind counts as salaried employment income.
func (k IncomeKind) IsCLT() bool {
	return k == KindSalary || k == KindStipend
}

type FreelanceEntry struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"` // USD -> BRL exchange rate at entry time
	Week        string          `json:"week"` // free-text grouping label
	Score       QualityScore    `json:"score"`
	NominalUSD  Money           `json:"nominal_usd"`
	NominalBRL  Money           `json:"nominal_brl"`
	AdjustedUSD Money           `json:"adjusted_usd"`
	AdjustedBRL Money           `json:"adjusted_brl"`
	Paid        bool            `json:"paid"`
}

func (e FreelanceEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Hours.IsNegative() {
		return ErrInvalidHours
	}
	if e.Rate.IsNegative() {
		return ErrInvalidRate
	}
	return e.Score.Validate()
}

type IncomeEntry struct {
	ID     string `json:"id"`
	Member string `json:"member"`
	Type   string `json:"type"`
	Value  Money  `json:"value"`
	Date   Date   `json:"date"`
}

func (e IncomeEntry) Validate() error {
	if strings.TrimSpace(e.Member) == "" {
		return ErrEmptyMember
	}
	if e.Value.IsNegative() {
		return ErrInvalidAmount
	}
	return e.Date.Validate()
}

// Kind returns the normalized income kind for the raw type label.
func (e IncomeEntry) Kind() IncomeKind {
	return KindOf(e.Type)
}

type ExpenseEntry struct {
	ID       string `json:"id"`
	Member   string `json:"member"`
	Category string `json:"category"`
	Value    Money  `json:"value"`
	Date     Date   `json:"date"`
}

func (e ExpenseEntry) Validate() error {
	if strings.TrimSpace(e.Member) == "" {
		return ErrEmptyMember
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Value.IsNegative() {
		return ErrInvalidAmount
	}
	return e.Date.Validate()
}

type InvestmentEntry struct {
	ID     string `json:"id"`
	Member string `json:"member"`
	Type   string `json:"type"`
	Value  Money  `json:"value"`
	Date   Date   `json:"date"`
	Yield  Money  `json:"yield"` // accumulated yield, may be negative
}

func (e InvestmentEntry) Validate() error {
	if strings.TrimSpace(e.Member) == "" {
		return ErrEmptyMember
	}
	if e.Value.IsNegative() {
		return ErrInvalidAmount
	}
	return e.Date.Validate()
}
