// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet represents a user's wallet. One wallet per user, created lazily
// on first reference. Balance and DepositBalance must remain non-negative
// after any committed transaction; TotalAccrued and TotalCommission are
// lifetime running totals and only ever grow.
type Wallet struct {
	ID              int64           `db:"id" json:"id"`                             // Primary key, BIGSERIAL in DB
	UserID          int64           `db:"user_id" json:"user_id"`                   // Foreign key to User
	Balance         decimal.Decimal `db:"balance" json:"balance"`                   // Main (withdrawable) balance, NUMERIC(20, 2) in DB
	DepositBalance  decimal.Decimal `db:"deposit_balance" json:"deposit_balance"`   // Funds earmarked for investment
	TotalAccrued    decimal.Decimal `db:"total_accrued" json:"total_accrued"`       // Cumulative daily returns credited
	TotalCommission decimal.Decimal `db:"total_commission" json:"total_commission"` // Cumulative referral commissions credited
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`             // Timestamp of creation
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`             // Timestamp of last update
}

// NewWallet creates a new empty Wallet instance for the given user.
func NewWallet(userID int64) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:          userID,
		Balance:         decimal.Zero,
		DepositBalance:  decimal.Zero,
		TotalAccrued:    decimal.Zero,
		TotalCommission: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
