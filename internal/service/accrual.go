// internal/service/accrual.go
package service

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DailyAccrual computes a position's daily return: principal * rate / 100,
// rounded half-up to precision decimal places. Pure and deterministic, so
// the orchestrator may safely recompute it on retry.
func DailyAccrual(principal, dailyRatePercent decimal.Decimal, precision int32) decimal.Decimal {
	return principal.Mul(dailyRatePercent).Div(oneHundred).Round(precision)
}

// CommissionTable maps referral levels to commission percentages.
// Index 0 holds the rate for level 1 (the direct sponsor). The table is
// supplied by configuration, never hardcoded into the engine.
type CommissionTable []decimal.Decimal

// RateForLevel returns the commission percentage for the given level, or
// zero for levels beyond the table. Levels start at 1.
func (t CommissionTable) RateForLevel(level int) decimal.Decimal {
	if level < 1 || level > len(t) {
		return decimal.Zero
	}
	return t[level-1]
}

// Levels returns the number of levels the table defines.
func (t CommissionTable) Levels() int {
	return len(t)
}

// CommissionFor computes the commission owed at the given level on an
// accrual amount, rounded half-up to precision decimal places.
func (t CommissionTable) CommissionFor(accrual decimal.Decimal, level int, precision int32) decimal.Decimal {
	rate := t.RateForLevel(level)
	if rate.IsZero() {
		return decimal.Zero
	}
	return accrual.Mul(rate).Div(oneHundred).Round(precision)
}
