// internal/domain/position.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionStatus defines the lifecycle status of an investment position.
type PositionStatus string

const (
	PositionStatusActive    PositionStatus = "ACTIVE"
	PositionStatusCompleted PositionStatus = "COMPLETED"
	PositionStatusCancelled PositionStatus = "CANCELLED"
)

// Position represents an investment position accruing a fixed daily
// percentage return on its principal.
type Position struct {
	ID            int64           `db:"id" json:"id"`                         // Primary key, BIGSERIAL in DB
	UserID        int64           `db:"user_id" json:"user_id"`               // Owner of the position
	Principal     decimal.Decimal `db:"principal" json:"principal"`           // Invested amount, NUMERIC(20, 2) in DB, non-negative
	DailyRate     decimal.Decimal `db:"daily_rate" json:"daily_rate"`         // Daily return in percent, e.g. 1.5 means 1.5%
	Status        PositionStatus  `db:"status" json:"status"`                 // ACTIVE, COMPLETED or CANCELLED
	IsActive      bool            `db:"is_active" json:"is_active"`           // Administrative on/off switch
	StartedAt     time.Time       `db:"started_at" json:"started_at"`         // When the position began accruing
	LastSettledAt *time.Time      `db:"last_settled_at" json:"last_settled_at"` // Last daily settlement (nullable)
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// NewPosition creates a new ACTIVE Position instance.
func NewPosition(userID int64, principal, dailyRate decimal.Decimal) *Position {
	now := time.Now().UTC()
	return &Position{
		UserID:    userID,
		Principal: principal,
		DailyRate: dailyRate,
		Status:    PositionStatusActive,
		IsActive:  true,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EligibleFor reports whether the position may be settled for the calendar
// day starting at dayStart (UTC day boundary). A position is settled at
// most once per calendar day: if LastSettledAt is on or after dayStart it
// has already been paid for that day.
func (p *Position) EligibleFor(dayStart time.Time) bool {
	if p.Status != PositionStatusActive || !p.IsActive {
		return false
	}
	if p.LastSettledAt != nil && !p.LastSettledAt.Before(dayStart) {
		return false
	}
	return true
}
