// internal/domain/audit.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Audit action kinds for wallet balance mutations.
const (
	AuditActionDailyAccrual       = "DAILY_ACCRUAL"
	AuditActionReferralCommission = "REFERRAL_COMMISSION"
)

// BalanceAudit captures a before/after snapshot of one wallet balance
// mutation. Written best-effort: a failed audit write is logged and
// dropped, never failing the mutation it describes.
type BalanceAudit struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	Action        string          `db:"action" json:"action"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before" json:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after" json:"balance_after"`
	Metadata      *string         `db:"metadata" json:"metadata"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewBalanceAudit creates a BalanceAudit snapshot.
func NewBalanceAudit(userID int64, action string, amount, before, after decimal.Decimal, metadata *string) *BalanceAudit {
	return &BalanceAudit{
		UserID:        userID,
		Action:        action,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Metadata:      metadata,
		CreatedAt:     time.Now().UTC(),
	}
}
