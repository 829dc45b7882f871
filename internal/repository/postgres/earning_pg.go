// internal/repository/postgres/earning_pg.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"vestflow-engine/internal/domain"
	"vestflow-engine/internal/repository"

	"github.com/jmoiron/sqlx"
)

// EarningRepository implements repository.EarningRepository for PostgreSQL.
type EarningRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewEarningRepository creates a new EarningRepository.
func NewEarningRepository(db *sqlx.DB) repository.EarningRepository {
	return &EarningRepository{}
}

// CreateEarning appends a new earnings record using the provided DBExecutor.
func (r *EarningRepository) CreateEarning(ctx context.Context, q repository.DBExecutor, earning *domain.Earning) error {
	query := `INSERT INTO earnings (user_id, type, amount, source_user_id, level, description, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		earning.UserID, earning.Type, earning.Amount,
		earning.SourceUserID, earning.Level, earning.Description, earning.CreatedAt,
	).Scan(&earning.ID)
	if err != nil {
		return fmt.Errorf("failed to create earning: %w", err)
	}
	return nil
}

// ListEarnings retrieves a filtered, paginated list of earnings records,
// newest first, along with the total count matching the filter.
// It performs two queries: one for the data and one for the total count.
func (r *EarningRepository) ListEarnings(ctx context.Context, q repository.DBExecutor, filter repository.EarningFilter, limit, offset int) ([]domain.Earning, int64, error) {
	conditions := []string{}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.UserID != nil {
		addCondition("user_id = $%d", *filter.UserID)
	}
	if filter.Type != nil {
		addCondition("type = $%d", *filter.Type)
	}
	if filter.From != nil {
		addCondition("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("created_at < $%d", *filter.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Query 1: Get the paginated earnings
	earnings := []domain.Earning{}
	query := fmt.Sprintf(`SELECT id, user_id, type, amount, source_user_id, level, description, created_at
              FROM earnings%s
              ORDER BY created_at DESC, id DESC
              LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	err := q.SelectContext(ctx, &earnings, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch earnings: %w", err)
	}

	// Query 2: Get the total count of earnings matching the filter
	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM earnings%s`, where)
	err = q.GetContext(ctx, &totalCount, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total earnings count: %w", err)
	}

	return earnings, totalCount, nil
}
