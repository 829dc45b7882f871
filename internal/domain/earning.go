// internal/domain/earning.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EarningType defines the origin of an earnings ledger entry.
type EarningType string

const (
	EarningTypeAccrual    EarningType = "ACCRUAL"
	EarningTypeCommission EarningType = "COMMISSION"
)

// Earning is one append-only earnings ledger entry. Commission entries
// carry the downstream user whose accrual generated the commission and
// the referral level as structured columns, so reporting never has to
// parse the description text.
type Earning struct {
	ID           int64           `db:"id" json:"id"`                         // Primary key, BIGSERIAL in DB
	UserID       int64           `db:"user_id" json:"user_id"`               // Credited user
	Type         EarningType     `db:"type" json:"type"`                     // ACCRUAL or COMMISSION
	Amount       decimal.Decimal `db:"amount" json:"amount"`                 // Credited amount, NUMERIC(20, 2) in DB
	SourceUserID *int64          `db:"source_user_id" json:"source_user_id"` // Paying downstream user (COMMISSION only)
	Level        *int            `db:"level" json:"level"`                   // Referral level, 1 = direct sponsor (COMMISSION only)
	Description  *string         `db:"description" json:"description"`       // Optional free-text detail
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// NewAccrualEarning creates an ACCRUAL earnings entry for a position's
// daily return.
func NewAccrualEarning(userID int64, amount decimal.Decimal, positionID int64) *Earning {
	desc := fmt.Sprintf("daily return on position %d", positionID)
	return &Earning{
		UserID:      userID,
		Type:        EarningTypeAccrual,
		Amount:      amount,
		Description: &desc,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewCommissionEarning creates a COMMISSION earnings entry crediting an
// ancestor for a downstream user's accrual at the given referral level.
func NewCommissionEarning(userID int64, amount decimal.Decimal, sourceUserID int64, level int) *Earning {
	desc := fmt.Sprintf("level %d commission from user %d", level, sourceUserID)
	return &Earning{
		UserID:       userID,
		Type:         EarningTypeCommission,
		Amount:       amount,
		SourceUserID: &sourceUserID,
		Level:        &level,
		Description:  &desc,
		CreatedAt:    time.Now().UTC(),
	}
}
