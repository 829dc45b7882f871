// internal/repository/position_repo.go
package repository

import (
	"context"
	"time"

	"vestflow-engine/internal/domain"
)

// PositionRepository defines the interface for investment position data operations.
type PositionRepository interface {
	// CreatePosition adds a new position to the database using the provided DBExecutor.
	CreatePosition(ctx context.Context, q DBExecutor, position *domain.Position) error
	// GetPositionByID retrieves a position by its ID using the provided DBExecutor.
	GetPositionByID(ctx context.Context, q DBExecutor, id int64) (*domain.Position, error)
	// ListEligible returns up to limit positions with id greater than afterID
	// that are eligible for settlement on the day starting at dayStart, in
	// ascending id order. Keyset pagination keeps memory bounded for large
	// position sets and stays stable while rows are being settled.
	ListEligible(ctx context.Context, q DBExecutor, dayStart time.Time, afterID int64, limit int) ([]domain.Position, error)
	// MarkSettled updates the position's last-settled timestamp.
	MarkSettled(ctx context.Context, q DBExecutor, positionID int64, settledAt time.Time) error
}
