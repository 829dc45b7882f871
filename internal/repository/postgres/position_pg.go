// internal/repository/postgres/position_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"
	"vestflow-engine/internal/util"

	"github.com/jmoiron/sqlx"
)

// PositionRepository implements repository.PositionRepository for PostgreSQL.
type PositionRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewPositionRepository creates a new PositionRepository.
func NewPositionRepository(db *sqlx.DB) repository.PositionRepository {
	return &PositionRepository{}
}

// CreatePosition inserts a new position into the database using the provided DBExecutor.
func (r *PositionRepository) CreatePosition(ctx context.Context, q repository.DBExecutor, position *domain.Position) error {
	query := `INSERT INTO positions (user_id, principal, daily_rate, status, is_active, started_at, last_settled_at, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		position.UserID, position.Principal, position.DailyRate,
		position.Status, position.IsActive, position.StartedAt,
		position.LastSettledAt, position.CreatedAt, position.UpdatedAt,
	).Scan(&position.ID)
	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}
	return nil
}

// GetPositionByID retrieves a position by its ID using the provided DBExecutor.
func (r *PositionRepository) GetPositionByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Position, error) {
	var position domain.Position
	query := `SELECT id, user_id, principal, daily_rate, status, is_active, started_at, last_settled_at, created_at, updated_at
              FROM positions WHERE id = $1`
	err := q.GetContext(ctx, &position, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get position by ID %d: %w", id, err)
	}
	return &position, nil
}

// ListEligible returns the next page of positions eligible for settlement on
// the day starting at dayStart, keyed by id for stable pagination while rows
// are being updated mid-run.
func (r *PositionRepository) ListEligible(ctx context.Context, q repository.DBExecutor, dayStart time.Time, afterID int64, limit int) ([]domain.Position, error) {
	positions := []domain.Position{}
	query := `SELECT id, user_id, principal, daily_rate, status, is_active, started_at, last_settled_at, created_at, updated_at
              FROM positions
              WHERE id > $1
                AND status = $2
                AND is_active = TRUE
                AND (last_settled_at IS NULL OR last_settled_at < $3)
              ORDER BY id
              LIMIT $4`
	err := q.SelectContext(ctx, &positions, query, afterID, domain.PositionStatusActive, dayStart, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible positions: %w", err)
	}
	return positions, nil
}

// MarkSettled updates the position's last-settled timestamp using the provided DBExecutor.
func (r *PositionRepository) MarkSettled(ctx context.Context, q repository.DBExecutor, positionID int64, settledAt time.Time) error {
	query := `UPDATE positions SET last_settled_at = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, settledAt, time.Now().UTC(), positionID)
	if err != nil {
		return fmt.Errorf("failed to mark position %d settled: %w", positionID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after marking position %d settled: %w", positionID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when marking position %d settled, position might not exist", positionID)
	}
	return nil
}
