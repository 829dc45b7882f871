// internal/service/accrual_test.go
package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDailyAccrual(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		precision int32
		want      string
	}{
		{"StandardReturn", "1000.00", "1.5", 2, "15.00"},
		{"SmallPrincipal", "33.33", "0.5", 2, "0.17"},     // 0.16665 rounds up
		{"HalfRoundsUp", "50", "0.01", 2, "0.01"},         // exactly 0.005
		{"ZeroPrincipal", "0", "1.5", 2, "0.00"},
		{"HighPrecision", "1000.00", "1.5", 4, "15.0000"},
		{"FractionalRate", "2500.00", "0.75", 2, "18.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyAccrual(dec(t, tt.principal), dec(t, tt.rate), tt.precision)
			assert.True(t, dec(t, tt.want).Equal(got),
				"accrual(%s, %s) = %s, want %s", tt.principal, tt.rate, got, tt.want)
		})
	}
}

func TestDailyAccrualIsDeterministic(t *testing.T) {
	principal := dec(t, "1234.56")
	rate := dec(t, "1.23")

	first := DailyAccrual(principal, rate, 2)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(DailyAccrual(principal, rate, 2)))
	}
}

func TestCommissionTableRateForLevel(t *testing.T) {
	table := CommissionTable{dec(t, "10"), dec(t, "5"), dec(t, "2")}

	assert.True(t, dec(t, "10").Equal(table.RateForLevel(1)))
	assert.True(t, dec(t, "5").Equal(table.RateForLevel(2)))
	assert.True(t, dec(t, "2").Equal(table.RateForLevel(3)))

	// Levels beyond the table and nonsensical levels pay nothing.
	assert.True(t, table.RateForLevel(4).IsZero())
	assert.True(t, table.RateForLevel(0).IsZero())
	assert.True(t, table.RateForLevel(-1).IsZero())

	assert.Equal(t, 3, table.Levels())
}

func TestCommissionTableCommissionFor(t *testing.T) {
	table := CommissionTable{dec(t, "10"), dec(t, "5"), dec(t, "2")}
	accrual := dec(t, "15.00")

	assert.True(t, dec(t, "1.50").Equal(table.CommissionFor(accrual, 1, 2)))
	assert.True(t, dec(t, "0.75").Equal(table.CommissionFor(accrual, 2, 2)))
	assert.True(t, dec(t, "0.30").Equal(table.CommissionFor(accrual, 3, 2)))
	assert.True(t, table.CommissionFor(accrual, 4, 2).IsZero())
}

// TestCommissionSumBounded verifies that for a table whose entries are each
// at most 100%, no single level's payout ever exceeds the accrual, and a
// table summing to at most 100% pays out at most the accrual in total.
func TestCommissionSumBounded(t *testing.T) {
	tables := []CommissionTable{
		{dec(t, "10"), dec(t, "5"), dec(t, "2")},
		{dec(t, "100")},
		{dec(t, "50"), dec(t, "30"), dec(t, "20")},
	}
	accrual := dec(t, "15.00")

	for _, table := range tables {
		total := decimal.Zero
		rateSum := decimal.Zero
		for level := 1; level <= table.Levels(); level++ {
			amount := table.CommissionFor(accrual, level, 2)
			assert.True(t, amount.LessThanOrEqual(accrual),
				"level %d commission %s exceeds accrual %s", level, amount, accrual)
			total = total.Add(amount)
			rateSum = rateSum.Add(table.RateForLevel(level))
		}
		if rateSum.LessThanOrEqual(dec(t, "100")) {
			assert.True(t, total.LessThanOrEqual(accrual),
				"total commission %s exceeds accrual %s for table %v", total, accrual, table)
		}
	}
}
