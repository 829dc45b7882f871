// internal/domain/settlement.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementRun is the idempotency gate record: at most one row per UTC
// calendar date may exist, enforced by a uniqueness constraint on RunDate.
// Created once per day, never updated.
type SettlementRun struct {
	ID        int64     `db:"id" json:"id"`
	RunDate   time.Time `db:"run_date" json:"run_date"` // UTC day boundary, DATE in DB, UNIQUE
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewSettlementRun creates a SettlementRun keyed to the UTC day boundary
// of the given time.
func NewSettlementRun(t time.Time) *SettlementRun {
	return &SettlementRun{
		RunDate:   DayStartUTC(t),
		CreatedAt: time.Now().UTC(),
	}
}

// DayStartUTC truncates a time to its UTC calendar day boundary.
func DayStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FailedItem records one position that could not be settled during a run.
type FailedItem struct {
	PositionID int64  `json:"position_id"`
	Error      string `json:"error"`
}

// FailedItemList is stored as JSONB on the run log row.
type FailedItemList []FailedItem

// Value implements driver.Valuer.
func (f FailedItemList) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal(FailedItemList{})
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *FailedItemList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported type %T for FailedItemList", src)
	}
}

// RunSummary is the result of one settlement invocation, returned to the
// caller and persisted as a SettlementRunLog.
type RunSummary struct {
	Processed       int             `json:"processed"`
	Skipped         int             `json:"skipped"`
	TotalAccrual    decimal.Decimal `json:"total_accrual_paid"`
	TotalCommission decimal.Decimal `json:"total_referral_paid"`
	FailedItems     FailedItemList  `json:"failed_items"`
}

// NewRunSummary creates an empty RunSummary.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		TotalAccrual:    decimal.Zero,
		TotalCommission: decimal.Zero,
		FailedItems:     FailedItemList{},
	}
}

// SettlementRunLog is the append-only record of one completed or failed
// run attempt. Forced (manual) runs carry no RunID since they bypass the
// daily gate; several logs may therefore exist for one calendar day.
type SettlementRunLog struct {
	ID              int64           `db:"id" json:"id"`
	CorrelationID   uuid.UUID       `db:"correlation_id" json:"correlation_id"` // Operator-facing identifier for this attempt
	RunID           *int64          `db:"run_id" json:"run_id"`                 // Gate record, nil for forced runs
	Forced          bool            `db:"forced" json:"forced"`
	Processed       int             `db:"processed" json:"processed"`
	Skipped         int             `db:"skipped" json:"skipped"`
	TotalAccrual    decimal.Decimal `db:"total_accrual" json:"total_accrual"`
	TotalCommission decimal.Decimal `db:"total_commission" json:"total_commission"`
	Failures        FailedItemList  `db:"failures" json:"failures"` // JSONB in DB
	Detail          *string         `db:"detail" json:"detail"`     // Raw diagnostic payload
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// NewSettlementRunLog builds a run log row from a finished summary.
func NewSettlementRunLog(runID *int64, forced bool, summary *RunSummary) *SettlementRunLog {
	detail := fmt.Sprintf("processed=%d skipped=%d failed=%d accrual=%s commission=%s",
		summary.Processed, summary.Skipped, len(summary.FailedItems),
		summary.TotalAccrual.String(), summary.TotalCommission.String())
	return &SettlementRunLog{
		CorrelationID:   uuid.New(),
		RunID:           runID,
		Forced:          forced,
		Processed:       summary.Processed,
		Skipped:         summary.Skipped,
		TotalAccrual:    summary.TotalAccrual,
		TotalCommission: summary.TotalCommission,
		Failures:        summary.FailedItems,
		Detail:          &detail,
		CreatedAt:       time.Now().UTC(),
	}
}
