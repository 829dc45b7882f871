// internal/domain/position_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDayStartUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"MiddayUTC",
			time.Date(2026, 8, 28, 13, 45, 12, 0, time.UTC),
			time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"AlreadyAtBoundary",
			time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"NonUTCLocationCrossesDate",
			// 01:30 local UTC+3 is 22:30 the previous day in UTC.
			time.Date(2026, 8, 28, 1, 30, 0, 0, loc),
			time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(DayStartUTC(tt.in)))
		})
	}
}

func TestPositionEligibleFor(t *testing.T) {
	dayStart := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	yesterday := dayStart.Add(-6 * time.Hour)
	earlierToday := dayStart.Add(3 * time.Hour)

	base := func() Position {
		return Position{
			ID:        1,
			UserID:    1,
			Principal: decimal.NewFromInt(1000),
			DailyRate: decimal.NewFromFloat(1.5),
			Status:    PositionStatusActive,
			IsActive:  true,
			StartedAt: dayStart.Add(-72 * time.Hour),
		}
	}

	t.Run("NeverSettled", func(t *testing.T) {
		p := base()
		assert.True(t, p.EligibleFor(dayStart))
	})

	t.Run("SettledYesterday", func(t *testing.T) {
		p := base()
		p.LastSettledAt = &yesterday
		assert.True(t, p.EligibleFor(dayStart))
	})

	t.Run("AlreadySettledToday", func(t *testing.T) {
		p := base()
		p.LastSettledAt = &earlierToday
		assert.False(t, p.EligibleFor(dayStart))
	})

	t.Run("SettledExactlyAtBoundary", func(t *testing.T) {
		p := base()
		p.LastSettledAt = &dayStart
		assert.False(t, p.EligibleFor(dayStart))
	})

	t.Run("CompletedStatus", func(t *testing.T) {
		p := base()
		p.Status = PositionStatusCompleted
		assert.False(t, p.EligibleFor(dayStart))
	})

	t.Run("CancelledStatus", func(t *testing.T) {
		p := base()
		p.Status = PositionStatusCancelled
		assert.False(t, p.EligibleFor(dayStart))
	})

	t.Run("AdministrativelyDisabled", func(t *testing.T) {
		p := base()
		p.IsActive = false
		assert.False(t, p.EligibleFor(dayStart))
	})
}
