// internal/repository/earning_repo.go
package repository

import (
	"context"
	"time"

	"vestflow-engine/internal/domain"
)

// EarningFilter narrows earnings queries for the reporting surface.
// Nil fields are ignored.
type EarningFilter struct {
	UserID *int64
	Type   *domain.EarningType
	From   *time.Time
	To     *time.Time
}

// EarningRepository defines the interface for earnings ledger operations.
// Earnings rows are append-only and never mutated.
type EarningRepository interface {
	// CreateEarning appends a new earnings record using the provided DBExecutor.
	CreateEarning(ctx context.Context, q DBExecutor, earning *domain.Earning) error
	// ListEarnings retrieves a filtered, paginated list of earnings records,
	// newest first, along with the total count matching the filter.
	ListEarnings(ctx context.Context, q DBExecutor, filter EarningFilter, limit, offset int) ([]domain.Earning, int64, error)
}
