// Package ledger maps the raw record store tables to the domain types. Each
// typed ledger owns one table: its column layout, its cell encoding and the
// tolerances applied to legacy rows.
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"registro/internal/core"
)

// Boolean cells are persisted with the labels the original files used.
const (
	cellTrue  = "Sim"
	cellFalse = "Não"
)

// parseMoney tolerates the empty cell: backfilled columns read as zero.
func parseMoney(col, s string) (core.Money, error) {
	if strings.TrimSpace(s) == "" {
		return core.MoneyZero(), nil
	}
	m, err := core.ParseMoney(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("column %s value %q: %w", col, s, err)
	}
	return m, nil
}

func parseDecimalCell(col, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("column %s value %q: %w", col, s, err)
	}
	return d, nil
}

func parseDateCell(col, s string) (core.Date, error) {
	if strings.TrimSpace(s) == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, fmt.Errorf("column %s value %q: %w", col, s, err)
	}
	return d, nil
}

func parseIntCell(col, s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("column %s value %q: %w", col, s, err)
	}
	return n, nil
}

func parseBoolCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func formatBool(b bool) string {
	if b {
		return cellTrue
	}
	return cellFalse
}

func formatDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
